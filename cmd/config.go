package cmd

import (
	"fmt"
	"strconv"

	"github.com/samzong/gitpilot/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage gitpilot configuration",
		Long: `Manage gitpilot configuration.

Git's own settings are handled by set-config and get-config.`,
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}
			cfg, err := config.GetConfig()
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to render configuration: %w", err)
			}
			if path := config.ConfigFileUsed(); path != "" {
				fmt.Fprintf(outWriter(), "# %s\n", path)
			}
			fmt.Fprint(outWriter(), string(out))
			return nil
		},
	}

	configSetCmd = &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration item",
		Long: `Set a configuration item and save it to the configuration file.

Keys: selection_mode, remote, default_branch, log_file, dry_run`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}
			return runConfigSet(args[0], args[1])
		},
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigSet(key, raw string) error {
	if !config.IsValidKey(key) {
		return fmt.Errorf("unknown configuration key %q (valid keys: %v)", key, config.ValidKeys())
	}

	var value any = raw
	if key == "dry_run" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("dry_run must be true or false, got %q", raw)
		}
		value = b
	}

	config.SetConfigValue(key, value)
	if _, err := config.GetConfig(); err != nil {
		return err
	}
	if err := config.SaveConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(outWriter(), "Set %s to %v\n", key, value)
	return nil
}
