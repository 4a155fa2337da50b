package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breakout-sim/internal/registry"
)

var pilotsCmd = &cobra.Command{
	Use:   "pilots",
	Short: "List scripted pilots",
	Long:  `Shows the scripted pilots that can drive the paddle in 'sim' and 'play --pilot'.`,
	Args:  cobra.NoArgs,
	Run:   runPilots,
}

func runPilots(_ *cobra.Command, _ []string) {
	pilots := registry.List()

	if len(pilots) == 0 {
		fmt.Println("No pilots available.")
		return
	}

	fmt.Println("Available pilots:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, p := range pilots {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")
	for _, p := range pilots {
		fmt.Printf("  %-*s  %s\n", maxNameLen, p.Name, p.Description)
	}

	fmt.Println()
	fmt.Println("Run 'breakout sim --pilot <name>' to use one.")
}
