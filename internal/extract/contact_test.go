// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package extract

import "testing"

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"dashed", "Call us at 403-555-1234 today", "403-555-1234"},
		{"dotted", "Phone: 604.555.9876", "604.555.9876"},
		{"plain digits", "Fax 4165551111 available", "4165551111"},
		{"parenthesized area code", "Reach us at (780) 555-2222", "(780) 555-2222"},
		// The dashed pattern runs first, so the + prefix is dropped.
		{"international prefix", "Call +1 800-555-3333 toll free", "800-555-3333"},
		{"first match wins", "Main 403-555-0001, alt 403-555-0002", "403-555-0001"},
		{"no phone", "Email us for a quote", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPhone(tt.text); got != tt.want {
				t.Errorf("extractPhone(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"simple", "Contact sales@acme.com for pricing", "sales@acme.com"},
		{"subdomain", "Write to info@mail.supplier.ca anytime", "info@mail.supplier.ca"},
		{"plus tag", "Orders to orders+bulk@metals.net please", "orders+bulk@metals.net"},
		{"no email", "Call 403-555-1234", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractEmail(tt.text); got != tt.want {
				t.Errorf("extractEmail(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
