// Package cmd contains CLI command definitions
package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ethpandaops/reportoor/internal/actions"
	"github.com/ethpandaops/reportoor/pkg/interactive"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch interactive TUI mode",
	Long:  `Launches the interactive Terminal User Interface for Reportoor.`,
	Run: func(_ *cobra.Command, _ []string) {
		runInteractiveTUI()
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractiveTUI() {
	fmt.Println("Reportoor - Interactive Mode")
	fmt.Println("============================")
	fmt.Println()

	for {
		options := []interactive.MenuOption{
			{
				Name:        "Replay Event Log",
				Description: "Replay a recorded event log into XML reports",
				Action: func() error {
					path, err := interactive.Input("Event log path:", "run.jsonl")
					if err != nil {
						fmt.Println("Input canceled.")
						interactive.PauseForEnter()
						return nil
					}

					output, err := interactive.Input("Report destination (empty for configured default):", "")
					if err != nil {
						fmt.Println("Input canceled.")
						interactive.PauseForEnter()
						return nil
					}

					opts := actions.ReplayOptions{
						EventsPath: path,
						Output:     output,
						Verbosity:  -1,
						ShowTables: true,
					}

					if err := actions.Replay(Logger, opts); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
			{
				Name:        "Run Demo",
				Description: "Exercise the pipeline with the built-in demo engine",
				Action: func() error {
					if err := actions.SelfTest(Logger, "", true); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
			{
				Name:        "Show Config",
				Description: "Display current environment configuration",
				Action: func() error {
					if err := actions.ShowConfig(); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
		}

		if err := interactive.ShowMainMenu(options); err != nil {
			if errors.Is(err, interactive.ErrExit) {
				fmt.Println("Goodbye!")
				return
			}
			log.Fatal(err)
		}

		fmt.Println()
	}
}
