package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Folio renders paged documents with headers and footers",
		Long: `Folio composes paged documents from settings files and Markdown.

Every page has a header, a body and a footer region. Settings files (TOML or
JSON) configure page size, margins, region heights, repetition, page numbering
and text styles; the Markdown body flows across as many pages as it needs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.stylesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
