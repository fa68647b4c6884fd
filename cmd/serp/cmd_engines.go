package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"serpkit/omnibox"
	"serpkit/render"
	"serpkit/search"
)

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List supported engines and their prefixes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), enginesTable(cfg.Registry(), omnibox.DefaultPrefixes()))
		return nil
	},
}

func enginesTable(reg *search.Registry, prefixes []omnibox.Prefix) string {
	byEngine := make(map[string][]string, len(prefixes))
	for _, p := range prefixes {
		byEngine[p.Engine] = append(byEngine[p.Engine], p.Names...)
	}

	t := render.NewTable("Engine", "Home page", "Prefixes")
	for _, e := range reg.All() {
		t.AddRow(e.Name(), e.HomePage(), strings.Join(byEngine[e.Name()], ", "))
	}
	return t.String()
}
