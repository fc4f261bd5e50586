// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fluxgen/sourcing-engine/internal/store"
	"github.com/fluxgen/sourcing-engine/pkg/types"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Manage the research queue of sourcing needs",
}

// --- list subcommand ---

var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List research queue items",
	Long: `List shows the research queue in priority order. Filter with
--status pending or --status completed.`,
	RunE: runQueueList,
}

func runQueueList(cmd *cobra.Command, args []string) error {
	status, _ := cmd.Flags().GetString("status")

	st, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer st.Close()

	items, err := st.ListQueue(context.Background(), types.QueueStatus(status))
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Println("Research queue is empty.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-36s  %-9s  %-4s  %-10s  %-7s  %s\n",
		"ID", "Item", "Type", "Pri", "Status", "Found", "Next research")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, item := range items {
		label := itemLabel(item)
		if len(label) > 36 {
			label = label[:33] + "..."
		}
		next := ""
		if item.NextResearchDate != nil {
			next = item.NextResearchDate.Format("2006-01-02")
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-36s  %-9s  %-4d  %-10s  %d/%-5d  %s\n",
			item.ID, label, item.ItemType, item.Priority, item.Status,
			item.NumSuppliersFound, item.TargetSuppliers, next)
	}

	fmt.Fprintf(os.Stdout, "\n%d item(s)\n", len(items))
	return nil
}

// --- add subcommand ---

var queueAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a sourcing need to the research queue",
	Long: `Add inserts a new equipment or material item into the research queue.
New items are pending and immediately due for research.`,
	RunE: runQueueAdd,
}

func runQueueAdd(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	itemType, _ := cmd.Flags().GetString("type")
	category, _ := cmd.Flags().GetString("category")
	priority, _ := cmd.Flags().GetInt("priority")
	cost, _ := cmd.Flags().GetFloat64("cost")
	target, _ := cmd.Flags().GetInt("target")
	frequency, _ := cmd.Flags().GetInt("frequency")

	if name == "" {
		return fmt.Errorf("--name is required")
	}
	switch types.ItemType(itemType) {
	case types.ItemEquipment, types.ItemMaterial:
	default:
		return fmt.Errorf("invalid --type %q: use equipment or material", itemType)
	}

	st, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.AddQueueItem(context.Background(), types.QueueItem{
		ItemName:              name,
		ItemType:              types.ItemType(itemType),
		ItemCategory:          category,
		Priority:              priority,
		EstimatedCost:         cost,
		TargetSuppliers:       target,
		ResearchFrequencyDays: frequency,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ added queue item %d: %s (%s)\n", id, name, itemType)
	return nil
}

func init() {
	queueListCmd.Flags().String("status", "", "filter by status: pending or completed")

	queueAddCmd.Flags().String("name", "", "item name (required)")
	queueAddCmd.Flags().String("type", "equipment", "item type: equipment or material")
	queueAddCmd.Flags().String("category", "", "item category")
	queueAddCmd.Flags().Int("priority", 0, "research priority (higher first)")
	queueAddCmd.Flags().Float64("cost", 0, "estimated cost (breaks priority ties)")
	queueAddCmd.Flags().Int("target", 3, "target number of suppliers to find")
	queueAddCmd.Flags().Int("frequency", 30, "research frequency in days")

	queueCmd.AddCommand(queueListCmd)
	queueCmd.AddCommand(queueAddCmd)

	rootCmd.AddCommand(queueCmd)
}
