package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/document"
	"github.com/matzehuels/folio/pkg/pipeline"
)

// configCommand creates the config command, which prints merged settings.
func (c *CLI) configCommand() *cobra.Command {
	var (
		configs []string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the merged settings of a document",
		Long: `Print the settings a render would use: defaults, settings files and
derived body bounds, merged into one tree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := mergedSettings(configs)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(settings)
			}
			return config.EncodeTOML(out, settings)
		},
	}

	cmd.Flags().StringArrayVarP(&configs, "config", "c", nil, "settings file (TOML or JSON), repeatable")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of TOML")

	return cmd
}

// mergedSettings returns the settings a default-template build would use.
func mergedSettings(configs []string) (config.Tree, error) {
	configs, err := absPaths(configs)
	if err != nil {
		return nil, err
	}
	in, err := pipeline.Load(pipeline.Options{SettingsFiles: configs})
	if err != nil {
		return nil, err
	}
	composer, err := document.NewComposer(document.DefaultTemplate())
	if err != nil {
		return nil, err
	}
	return composer.Settings(in.Builder)
}

// fileSettings merges settings files without defaults.
func fileSettings(configs []string) (config.Tree, error) {
	configs, err := absPaths(configs)
	if err != nil {
		return nil, err
	}
	files, err := config.LoadFiles(configs...)
	if err != nil {
		return nil, err
	}
	return config.Merge(files...), nil
}
