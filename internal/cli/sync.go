package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mark-labs/mark/internal/branding"
	"github.com/mark-labs/mark/internal/config"
	"github.com/mark-labs/mark/internal/marksync"
	"github.com/mark-labs/mark/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	syncStrict  bool
	syncDryRun  bool
	syncVerbose bool
)

func init() {
	syncCmd.Flags().BoolVar(&syncStrict, "strict", false, "Abort on the first malformed entry or failed write")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Report missing descriptors without writing anything")
	syncCmd.Flags().BoolVarP(&syncVerbose, "verbose", "v", false, "Trace each step on stderr")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync [dir]",
	Short: "Create missing marker and metadata descriptors",
	Long: `Read <dir>/` + branding.ControlDir() + `/` + marksync.RootManifest + `, follow every agent.marks and tool.marks
sub-manifest it lists, and create markers.<name> and md.<name> for each
referenced entity that lacks them. Existing files are never modified.

Examples:
  mark sync
  mark sync ./my-project --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		if err := config.Load(root); err != nil {
			return err
		}
		strict := config.GetBool(config.KeyStrict)
		if cmd.Flags().Changed("strict") {
			strict = syncStrict
		}
		verbose := syncVerbose || config.GetBool(config.KeyVerbose)

		opts := []marksync.Option{
			marksync.WithStrict(strict),
			marksync.WithDryRun(syncDryRun),
			marksync.WithLogger(newLogger(cmd.ErrOrStderr(), verbose)),
		}

		out := cmd.OutOrStdout()
		if path := config.TemplatesPath(root); path != "" {
			set, err := scaffold.LoadTemplateFile(path)
			if err != nil {
				return err
			}
			opts = append(opts, marksync.WithTemplates(set))
			fmt.Fprintf(out, "\n📐 Using descriptor templates from %s\n", path)
		}

		fmt.Fprintf(out, "\n🔍 Syncing %s manifests in %s...\n", branding.ControlDir(), root)

		report, err := marksync.Run(root, opts...)
		if err != nil {
			return err
		}

		printReport(out, report)
		return nil
	},
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func printReport(w io.Writer, report *marksync.Report) {
	if len(report.Skipped) > 0 || len(report.Failures) > 0 {
		fmt.Fprintf(w, "⚠️  %d skipped, %d failed (details in the log)\n", len(report.Skipped), len(report.Failures))
	}

	if report.DryRun {
		fmt.Fprintf(w, "✅ Dry run complete. %d manifests processed, %d descriptors would be created.\n\n",
			report.Processed, len(report.Created))
		for _, p := range report.Created {
			fmt.Fprintf(w, "  %s\n", p)
		}
		return
	}

	fmt.Fprintf(w, "✅ Marker sync complete. %d manifests processed, %d descriptors created.\n", report.Processed, len(report.Created))
	fmt.Fprintf(w, "📁 Log written to %s\n\n", report.LogPath)
}
