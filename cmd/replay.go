package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethpandaops/reportoor/internal/actions"
)

var (
	replayConfigFile string
	replayOutput     string
	replayStream     bool
	replaySuffix     string
	replayVerbosity  int
	replayPerTest    bool
	replayNoTiming   bool
	replayEncoding   string
	replayNoTables   bool
	replayVerbose    bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [event-log]",
	Short: "Replay a recorded event log into XML reports",
	Long: `Replay a recorded test event log and generate JUnit-style XML reports.

The event log is newline-delimited JSON, one event per line:

  {"action":"start","test":"pkg.LoginSuite.test_ok","description":"Logs in"}
  {"action":"output","stream":"stdout","text":"hello\n"}
  {"action":"pass","test":"pkg.LoginSuite.test_ok"}
  {"action":"stop","test":"pkg.LoginSuite.test_ok"}

Each test emits start, then exactly one of pass/fail/error/skip, then stop.
fail and error events carry kind, message and trace fields; skip carries a
reason. Use "-" as the event log path to read from stdin.

Reports are written one file per suite to the output directory, or as a
single combined document when the destination ends in .xml, or to stdout
with --stream.

The command exits non-zero when the replayed run contains failures or
errors, so it can gate CI pipelines.

Examples:
  ./bin/reportoor replay run.jsonl
  ./bin/reportoor replay run.jsonl --output reports/nightly
  ./bin/reportoor replay run.jsonl --output results.xml
  cat run.jsonl | ./bin/reportoor replay - --stream`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		opts := actions.ReplayOptions{
			EventsPath:     args[0],
			ConfigFile:     replayConfigFile,
			Output:         replayOutput,
			Stream:         replayStream,
			Suffix:         replaySuffix,
			Verbosity:      replayVerbosity,
			PerTestCapture: replayPerTest,
			NoTiming:       replayNoTiming,
			Encoding:       replayEncoding,
			ShowTables:     !replayNoTables && !replayStream,
		}

		if err := actions.Replay(newLogger(replayVerbose), opts); err != nil {
			return fmt.Errorf("replay failed: %w", err)
		}

		fmt.Println("\n✅ Replay completed successfully!")
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayConfigFile, "config", "", "YAML config file overlaying environment settings")
	replayCmd.Flags().StringVarP(&replayOutput, "output", "o", "", "Report destination (directory, or a single file ending in .xml)")
	replayCmd.Flags().BoolVar(&replayStream, "stream", false, "Write report documents to stdout instead of files")
	replayCmd.Flags().StringVar(&replaySuffix, "suffix", "", "Suffix for suite names and file names (defaults to a timestamp)")
	replayCmd.Flags().IntVar(&replayVerbosity, "verbosity", -1, "Console verbosity: 0 quiet, 1 dots, 2 per-test lines")
	replayCmd.Flags().BoolVar(&replayPerTest, "per-test-capture", false, "Attach captured output to individual tests instead of suites")
	replayCmd.Flags().BoolVar(&replayNoTiming, "no-timing", false, "Disable elapsed-time measurement")
	replayCmd.Flags().StringVar(&replayEncoding, "encoding", "", "Document charset (defaults to the configured encoding)")
	replayCmd.Flags().BoolVar(&replayNoTables, "no-tables", false, "Skip the suite and summary tables after the run")
	replayCmd.Flags().BoolVarP(&replayVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(replayCmd)
}
