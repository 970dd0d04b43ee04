package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/tinyq/dom"
	"github.com/npillmayer/tinyq/dom/domdbg"
	"github.com/npillmayer/tinyq/q"
	"github.com/spf13/cobra"
)

type queryOptions struct {
	filters []string
	one     bool
	tree    bool
}

func newQueryCommand() *cobra.Command {
	opts := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "query <file.html> <selector>",
		Short: "Print the nodes of a document matching a selector",
		Long: `Query parses an HTML file and prints the nodes matching a CSS selector,
optionally narrowed by filters like @odd or @nth(2n+1). Nodes are printed as
outer HTML, one per line, or as a tree with --tree.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts, args[0], args[1])
		},
	}
	cmd.Flags().StringArrayVar(&opts.filters, "filter", nil, "filter to apply (repeatable)")
	cmd.Flags().BoolVar(&opts.one, "one", false, "select the first match only")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "print nodes as a tree")
	return cmd
}

func runQuery(cmd *cobra.Command, opts *queryOptions, path, selector string) error {
	markup, err := readFile(path)
	if err != nil {
		return err
	}
	doc, err := dom.ParseString(markup)
	if err != nil {
		return fmt.Errorf("cannot parse %s: %w", path, err)
	}
	e := q.New(doc)
	var c *q.Collection
	if opts.one {
		c = e.One(selector)
	} else {
		c = e.Q(selector)
	}
	if len(opts.filters) > 0 {
		filters := make([]any, len(opts.filters))
		for i, f := range opts.filters {
			filters[i] = f
		}
		c = c.Filter(filters...)
	}
	nodes, err := c.Result()
	if err != nil {
		return err
	}
	tracer().Infof("%s matched %d nodes", c.Chain(), len(nodes))
	out := cmd.OutOrStdout()
	if opts.tree {
		fmt.Fprint(out, domdbg.DumpNodes(selector, nodes))
		return nil
	}
	for _, n := range nodes {
		fmt.Fprintln(out, strings.TrimSpace(dom.OuterHTML(n)))
	}
	return nil
}
