// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package extract

import "strings"

// usStates is the gazetteer of US state names matched against snippets.
var usStates = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California",
	"Colorado", "Connecticut", "Delaware", "Florida", "Georgia",
	"Idaho", "Illinois", "Indiana", "Iowa", "Kansas", "Kentucky",
	"Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan",
	"Minnesota", "Mississippi", "Missouri", "Montana", "Nebraska",
	"Nevada", "New Hampshire", "New Jersey", "New Mexico", "New York",
	"North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon",
	"Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington",
	"West Virginia", "Wisconsin", "Wyoming",
}

// caProvinces is the gazetteer of Canadian province and territory names.
var caProvinces = []string{
	"Alberta", "British Columbia", "Manitoba", "New Brunswick",
	"Newfoundland and Labrador", "Northwest Territories", "Nova Scotia",
	"Nunavut", "Ontario", "Prince Edward Island", "Quebec",
	"Saskatchewan", "Yukon",
}

// location holds fields inferred from snippet text.
type location struct {
	city    string
	state   string
	country string
}

// extractLocation scans text for state, province, and country mentions.
// Matching is exact substring against title-case or all-caps gazetteer
// entries. The province scan runs after the state scan and overrides
// it; an explicit country or demonym mention overrides either. The
// precedence is load-bearing: "Buffalo, New York ships to Ontario,
// Canada" must resolve to Canada (R2.3).
func extractLocation(text string) location {
	var loc location

	for _, state := range usStates {
		if strings.Contains(text, state) || strings.Contains(text, strings.ToUpper(state)) {
			loc.state = state
			loc.country = "USA"
			break
		}
	}

	for _, province := range caProvinces {
		if strings.Contains(text, province) || strings.Contains(text, strings.ToUpper(province)) {
			loc.state = province
			loc.country = "Canada"
			break
		}
	}

	switch {
	case strings.Contains(text, "Canada") || strings.Contains(text, "Canadian"):
		loc.country = "Canada"
	case strings.Contains(text, "USA") || strings.Contains(text, "United States") || strings.Contains(text, "American"):
		loc.country = "USA"
	case strings.Contains(text, "China") || strings.Contains(text, "Chinese"):
		loc.country = "China"
	case strings.Contains(text, "India") || strings.Contains(text, "Indian"):
		loc.country = "India"
	}

	return loc
}
