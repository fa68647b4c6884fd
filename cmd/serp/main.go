// Command serp queries web search engines from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "serp",
	Short: "Query web search engines and print their organic results",
	Long: `serp fetches result pages from Bing, Brave, Google, Mojeek, Yahoo and
Yandex and extracts title, URL and summary for every organic result.

Examples:
  serp search golang generics
  serp search g rust lifetimes          # Google only
  serp search -e bing -e brave zig      # several engines
  serp search --from 2024-01-01 --to 2024-01-31 --format json go 1.22
  serp engines
  serp inspect yandex golang`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(enginesCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(initConfigCmd)

	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/serpkit/config.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides config)")
}
