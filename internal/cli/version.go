package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/rubychanges/internal/build"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for rubychanges",
	Example: `  # Show version info
  rubychanges version

  # Plain output (for scripts)
  rubychanges version --plain`,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	Args:        cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if versionPlain {
			printPlainVersion(cmd)
			return
		}
		printPrettyVersion(cmd)
	},
}

func init() {
	versionCmd.GroupID = GroupInformation
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
	rootCmd.AddCommand(versionCmd)
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rubychanges %s\n", build.Version)
	for _, item := range build.Details()[1:] {
		fmt.Fprintf(out, "%s: %s\n", strings.ToLower(item.Label), item.Value)
	}
}

func printPrettyVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(out, "\n%s %s\n\n", cyan("rubychanges"), dim("Ruby changes, distilled"))
	for _, item := range build.Details() {
		fmt.Fprintf(out, "  %s    %s\n", yellow(fmt.Sprintf("%10s", item.Label)), item.Value)
	}
	fmt.Fprintf(out, "\n  %s\n\n", dim(build.SourceURL))
}
