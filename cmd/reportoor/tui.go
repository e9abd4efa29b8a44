package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/ethpandaops/reportoor/cmd"
	"github.com/ethpandaops/reportoor/internal/actions"
	"github.com/ethpandaops/reportoor/pkg/interactive"
)

func runInteractive() {
	fmt.Println("Reportoor - Interactive Mode")
	fmt.Println("============================")
	fmt.Println()

	for {
		options := []interactive.MenuOption{
			{
				Name:        "🧪 Report Generation",
				Description: "Replay event logs and run the demo engine",
				Action:      showReportMenu,
			},
			{
				Name:        "📋 Show Config",
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

func showReportMenu() error {
	for {
		options := []interactive.MenuOption{
			{
				Name:        "Replay Event Log",
				Description: "Generate XML reports from a recorded event log",
				Action:      runReplayInteractive,
			},
			{
				Name:        "Run Demo",
				Description: "Exercise the pipeline with the built-in demo engine",
				Action:      runSelftestInteractive,
			},
		}

		fmt.Println("\n🧪 Report Generation")
		fmt.Println("====================")
		if err := interactive.ShowMainMenu(options); err != nil {
			if errors.Is(err, interactive.ErrExit) {
				return nil // Return to main menu
			}
			return err
		}
	}
}

func runReplayInteractive() error {
	path, err := interactive.Input("Event log path:", "run.jsonl")
	if err != nil {
		fmt.Println("Input canceled.")
		interactive.PauseForEnter()
		return nil
	}

	destinations := []string{"Report directory", "Single XML file", "Stdout stream"}

	destination, err := interactive.SelectFromList("Select report destination:", destinations)
	if err != nil {
		fmt.Println("Selection canceled.")
		interactive.PauseForEnter()
		return nil
	}

	opts := actions.ReplayOptions{
		EventsPath: path,
		Verbosity:  -1,
		ShowTables: true,
	}

	switch destination {
	case "Report directory":
		output, inputErr := interactive.Input("Report directory:", "reports")
		if inputErr != nil {
			fmt.Println("Input canceled.")
			interactive.PauseForEnter()
			return nil
		}
		opts.Output = output
	case "Single XML file":
		output, inputErr := interactive.Input("Report file:", "results.xml")
		if inputErr != nil {
			fmt.Println("Input canceled.")
			interactive.PauseForEnter()
			return nil
		}
		opts.Output = output
	case "Stdout stream":
		opts.Stream = true
		opts.ShowTables = false
	}

	if interactive.Confirm("Enable verbose progress output?") {
		opts.Verbosity = 2
	}

	if err := actions.Replay(cmd.Logger, opts); err != nil {
		fmt.Printf("\n❌ Error: %v\n", err)
	}

	interactive.PauseForEnter()
	return nil
}

func runSelftestInteractive() error {
	output, err := interactive.Input("Report destination (empty for configured default):", "")
	if err != nil {
		fmt.Println("Input canceled.")
		interactive.PauseForEnter()
		return nil
	}

	if err := actions.SelfTest(cmd.Logger, output, true); err != nil {
		fmt.Printf("\n❌ Error: %v\n", err)
	}

	interactive.PauseForEnter()
	return nil
}
