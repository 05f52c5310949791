package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List grade-level presets",
	Long:  `Shows the presets defined in the loaded configuration.`,
	RunE:  runPresets,
}

func runPresets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	presets := cfg.PresetIDs()
	if len(presets) == 0 {
		fmt.Println("No presets configured.")
		return nil
	}

	fmt.Printf("  %-6s  %-14s  %-6s  %-7s  %-9s  %s\n", "ID", "Title", "Grid", "Agents", "Layout", "Policy")
	fmt.Printf("  %-6s  %-14s  %-6s  %-7s  %-9s  %s\n", "--", "-----", "----", "------", "------", "------")

	for _, p := range presets {
		id := p.ID
		if id == cfg.DefaultPreset {
			id += "*"
		}
		policy := p.Policy
		if p.ChoosePolicy {
			policy += " (selectable)"
		}
		fmt.Printf("  %-6s  %-14s  %-6s  %-7d  %-9s  %s\n",
			id, p.Title, fmt.Sprintf("%dx%d", p.Grid.Width, p.Grid.Height),
			p.Players, p.Layout, policy)
	}

	fmt.Println()
	fmt.Println("* default preset")
	return nil
}
