package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/pipeline"
)

const defaultOutput = "document"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	configs []string
	formats string
	output  string
	header  string
	footer  string
	title   string
	author  string
	scale   float64
	noCache bool
	refresh bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [content.md]",
		Short: "Render a paged document",
		Long: `Render a Markdown body into a paged document.

Settings files are merged in order, the first file winning. Use "-" as the
content argument to read Markdown from stdin. Each requested format is written
to <output>.<format>.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src string
			if len(args) == 1 {
				data, err := readContent(cmd.InOrStdin(), args[0])
				if err != nil {
					return err
				}
				src = data
			}
			return c.runRender(cmd, src, outputBase(opts.output, args), opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.configs, "config", "c", nil, "settings file (TOML or JSON), repeatable")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output formats: pdf, svg, png, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: content file name)")
	cmd.Flags().StringVar(&opts.header, "header", "", "header text")
	cmd.Flags().StringVar(&opts.footer, "footer", "", "footer text")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title")
	cmd.Flags().StringVar(&opts.author, "author", "", "document author")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG raster scale")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, markdown, base string, opts renderOpts) error {
	ctx := cmd.Context()

	configs, err := absPaths(opts.configs)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerTo(ctx, cmd.ErrOrStderr(), "Rendering document...")
	spinner.Start()
	res, err := runner.Execute(ctx, pipeline.Options{
		SettingsFiles: configs,
		Markdown:      markdown,
		Header:        opts.header,
		Footer:        opts.footer,
		Formats:       parseFormats(opts.formats),
		Title:         opts.title,
		Author:        opts.author,
		Scale:         opts.scale,
		Refresh:       opts.refresh,
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	formats := artifactFormats(res.Artifacts)

	printSuccess("Rendered %s", base)
	printStats(res.Pages, formats, res.CacheInfo.RenderHit)
	for _, f := range formats {
		path := base + "." + f
		if err := writeArtifact(path, res.Artifacts[f]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

func readContent(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	return string(data), nil
}

// outputBase derives the output base path from the flag or the content file.
func outputBase(output string, args []string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	if len(args) == 1 && args[0] != "-" {
		return strings.TrimSuffix(args[0], filepath.Ext(args[0]))
	}
	return defaultOutput
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// artifactFormats lists the formats of the rendered artifacts in a stable
// order.
func artifactFormats(artifacts map[string][]byte) []string {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}
