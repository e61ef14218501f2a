package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/rubychanges/internal/config"
	clierrors "github.com/ariel-frischer/rubychanges/internal/errors"
	"github.com/ariel-frischer/rubychanges/internal/output"
)

var (
	configShowJSON  bool
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage rubychanges configuration",
	Long: `Manage rubychanges configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (RUBYCHANGES_*)
  3. Project config (.rubychanges.yml, or .rubychanges.json)
  4. User config (~/.config/rubychanges/config.yml)
  5. Built-in defaults`,
	Example: `  # Show current configuration and where each value came from
  rubychanges config show

  # Write a commented .rubychanges.yml
  rubychanges config init`,
}

var configShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Show the effective configuration",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented project config",
	Long: `Write a commented .rubychanges.yml with the default values, or the file
named by --config. An existing file is left unchanged unless --force is given.`,
	Annotations:  map[string]string{skipConfigAnnotation: "true"},
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runConfigInit,
}

func init() {
	configCmd.GroupID = GroupConfiguration
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)

	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "Output in JSON format")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config")
}

// configEntries lists the configuration keys in display order.
func configEntries(cfg *config.Configuration) []struct {
	key   string
	value any
} {
	return []struct {
		key   string
		value any
	}{
		{"source_dir", cfg.SourceDir},
		{"database", cfg.Database},
		{"base_release", cfg.BaseRelease},
		{"output", cfg.Output},
		{"default_level", cfg.DefaultLevel},
		{"sections", cfg.Sections},
		{"verbose", cfg.Verbose},
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg := currentConfig()
	out := cmd.OutOrStdout()

	if configShowJSON {
		values := make(map[string]any)
		for _, e := range configEntries(cfg) {
			values[e.key] = e.value
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(values)
	}

	fmt.Fprintln(out, "Configuration Sources:")
	for _, e := range configEntries(cfg) {
		source := cfg.Sources[e.key]
		if source == "" {
			source = config.SourceDefault
		}
		value := e.value
		if sections, ok := value.([]string); ok {
			value = "[" + strings.Join(sections, ", ") + "]"
		}
		output.PrintKeyValue(out, e.key, value, string(source))
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		path = config.ProjectConfigPath()
	}

	_, statErr := os.Stat(path)
	exists := statErr == nil
	if exists && !configInitForce {
		return clierrors.FileExists(path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return clierrors.FileNotWritable(path, err)
		}
	}
	if err := atomic.WriteFile(path, strings.NewReader(config.GetDefaultConfigTemplate())); err != nil {
		return clierrors.FileNotWritable(path, err)
	}

	verb := "Created"
	if exists {
		verb = "Overwrote"
	}
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s %s", verb, path))
	return nil
}
