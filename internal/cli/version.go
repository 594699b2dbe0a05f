package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mark-labs/mark/internal/branding"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

// buildInfo is what `mark version` reports, in text or JSON form.
type buildInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Module  string `json:"module"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Name:    branding.CLIName(),
		Version: buildVersion,
		Commit:  buildCommit,
		Date:    buildDate,
		Module:  branding.GoModule(),
	}
}

func (b buildInfo) writeText(w io.Writer) {
	fmt.Fprintf(w, "%s version %s (commit: %s, built: %s, module: %s)\n", b.Name, b.Version, b.Commit, b.Date, b.Module)
}

func (b buildInfo) writeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding build info: %w", err)
	}
	return nil
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print the version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build info as JSON")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentBuild()
		out := cmd.OutOrStdout()
		switch {
		case versionShort:
			fmt.Fprintln(out, info.Version)
		case versionJSON:
			return info.writeJSON(out)
		default:
			info.writeText(out)
		}
		return nil
	},
}
