package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/woods/internal/registry"
)

var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List all movement policies",
	Long:  `Shows every movement policy a run can use.`,
	Run:   runPolicies,
}

func runPolicies(cmd *cobra.Command, args []string) {
	policies := registry.List()

	if len(policies) == 0 {
		fmt.Println("No policies available.")
		return
	}

	fmt.Println("Available policies:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range policies {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, p := range policies {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}

	fmt.Println()
	fmt.Println("Use 'woods run --preset 6-8 --policy <id>' to pick one.")
}
