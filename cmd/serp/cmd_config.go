package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"serpkit/config"
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultTOML())
			return err
		}

		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			p, err := config.ConfigPath()
			if err != nil {
				return fmt.Errorf("locating config: %w", err)
			}
			path = p
		}

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultTOML()), 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	initConfigCmd.Flags().Bool("force", false, "Overwrite an existing file")
	initConfigCmd.Flags().Bool("stdout", false, "Print to stdout instead of writing a file")
}
