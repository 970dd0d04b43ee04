package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/tinyq/dom"
	"github.com/npillmayer/tinyq/format"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type renderOptions struct {
	data   string
	lang   string
	html   string
	object string
}

func newRenderCommand() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Fill a template with data",
		Long: `Render fills a template file with data read from a YAML or JSON file.
With --html, templates may include templates defined by id in an HTML document,
and a template argument of the form #id names such a template.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.data, "data", "", "YAML or JSON data file")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "YAML file of language strings")
	cmd.Flags().StringVar(&opts.html, "html", "", "HTML document providing templates by id")
	cmd.Flags().StringVar(&opts.object, "objects", "root", "rendering of object values (root|value)")
	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions, tmpl string) error {
	var ropts []format.Option
	switch opts.object {
	case "root":
	case "value":
		ropts = append(ropts, format.WithObjectFallback(format.ValueJSON))
	default:
		return fmt.Errorf("invalid object rendering %q: must be root or value", opts.object)
	}
	if opts.html != "" {
		markup, err := readFile(opts.html)
		if err != nil {
			return err
		}
		doc, err := dom.ParseString(markup)
		if err != nil {
			return fmt.Errorf("cannot parse %s: %w", opts.html, err)
		}
		ropts = append(ropts, format.WithSource(doc))
	}
	if opts.lang != "" {
		var strs map[string]string
		if err := readYAML(opts.lang, &strs); err != nil {
			return err
		}
		ropts = append(ropts, format.WithLang(strs))
	}
	var data any
	if opts.data != "" {
		if err := readYAML(opts.data, &data); err != nil {
			return err
		}
	}
	if !strings.HasPrefix(tmpl, "#") {
		src, err := readFile(tmpl)
		if err != nil {
			return err
		}
		tmpl = src
	}
	out, err := format.NewRenderer(ropts...).Render(tmpl, data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// readYAML decodes a YAML file. JSON files are valid YAML.
func readYAML(path string, v any) error {
	src, err := readFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal([]byte(src), v); err != nil {
		return fmt.Errorf("cannot decode %s: %w", path, err)
	}
	return nil
}
