package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"serpkit/fetcher"
	"serpkit/search"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <engine> <query...>",
	Short: "Fetch one engine's page and show its structure",
	Long: `Inspect fetches the result page for one engine and prints the element
tree (tags with id and class attributes) below <body>, followed by what
the engine extracts. Use --file to inspect a saved page instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Int("depth", 4, "Maximum tree depth to print")
	inspectCmd.Flags().String("file", "", "Read the page from a file instead of fetching")
	inspectCmd.Flags().Bool("raw", false, "Print the raw body instead of the tree")
	inspectCmd.Flags().Duration("timeout", 0, "Per-request timeout (overrides config)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg.Log)

	engine, ok := search.Extended(nil).Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown engine %q", args[0])
	}
	out := cmd.OutOrStdout()

	var body string
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		body = string(b)
	} else {
		if len(args) < 2 {
			return fmt.Errorf("inspect %s needs a query or --file", engine.Name())
		}
		opts := search.Options{SafeSearch: cfg.SafeSearch()}
		u, err := engine.URL(strings.Join(args[1:], " "), opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "GET %s\n", u)
		for _, h := range engine.Headers(opts).Entries() {
			fmt.Fprintf(out, "  %s: %s\n", h.Name, h.Value)
		}

		resp, err := newFetcher(cmd, cfg.Fetcher, log).Fetch(context.Background(), u, engine.Headers(opts))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "status %d, final URL %s, %d bytes\n", resp.Status, resp.FinalURL, len(resp.Body))
		if err := engine.Validate(resp); err != nil {
			fmt.Fprintf(out, "validate: %v\n", err)
		}
		if blocked, reason := fetcher.DetectChallenge(resp.Body); blocked {
			fmt.Fprintf(out, "challenge: %s\n", reason)
		}
		body = resp.Body
	}

	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		_, err := io.WriteString(out, body)
		return err
	}

	depth, _ := cmd.Flags().GetInt("depth")
	if err := dumpStructure(out, body, depth); err != nil {
		return err
	}

	tagged, err := engine.Parse(body)
	if err != nil {
		fmt.Fprintf(out, "\nparse: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "\n%d results\n", len(tagged))
	for i, t := range tagged {
		fmt.Fprintf(out, "%2d. %s\n    %s\n", i+1, t.Result.Title, t.Result.URL)
	}
	return nil
}

// dumpStructure prints the element tree below <body>.
func dumpStructure(w io.Writer, body string, maxDepth int) error {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	root := findElement(doc, "body")
	if root == nil {
		fmt.Fprintln(w, "No body found!")
		return nil
	}
	analyzeNode(w, root, 0, maxDepth)
	return nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func analyzeNode(w io.Writer, n *html.Node, depth, maxDepth int) {
	if depth > maxDepth {
		return
	}
	indent := strings.Repeat("  ", depth)

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "script", "style", "svg":
			continue
		}
		var attrs strings.Builder
		for _, a := range c.Attr {
			if a.Key == "id" || a.Key == "class" || a.Key == "data-type" {
				fmt.Fprintf(&attrs, " %s=%q", a.Key, a.Val)
			}
		}
		fmt.Fprintf(w, "%s<%s%s>\n", indent, c.Data, attrs.String())
		analyzeNode(w, c, depth+1, maxDepth)
	}
}
