package cli

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/style"
)

// stylesCommand creates the styles command, which lists resolved styles.
func (c *CLI) stylesCommand() *cobra.Command {
	var (
		configs     []string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "styles [name]",
		Short: "List the text styles available to content",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cascade, err := cascadeFor(configs)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				def, err := cascade.Resolve(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderStyles([]styleRow{{args[0], def}}))
				return nil
			}
			rows, err := styleRows(cascade)
			if err != nil {
				return err
			}
			if interactive {
				_, err := tea.NewProgram(NewStyleListModel(rows)).Run()
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderStyles(rows))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&configs, "config", "c", nil, "settings file (TOML or JSON), repeatable")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse styles interactively")

	return cmd
}

type styleRow struct {
	Name string
	Def  style.Definition
}

// cascadeFor builds the cascade of the default sheet with the settings
// files' styles table applied.
func cascadeFor(configs []string) (*style.Cascade, error) {
	settings, err := fileSettings(configs)
	if err != nil {
		return nil, err
	}
	sheet, err := style.DefaultSheet().Apply(settings.Branch(config.KeyStyles))
	if err != nil {
		return nil, err
	}
	return style.NewCascade(sheet)
}

// styleRows lists the base style, named "body", then every named style.
func styleRows(c *style.Cascade) ([]styleRow, error) {
	rows := []styleRow{{"body", c.Base()}}
	for _, name := range c.AvailableStyles() {
		def, err := c.Resolve(name)
		if err != nil {
			return nil, err
		}
		rows = append(rows, styleRow{name, def})
	}
	return rows, nil
}

func styleCells(r styleRow) []string {
	color := r.Def.Color
	if color == "" {
		color = "—"
	}
	return []string{
		r.Name,
		strconv.FormatFloat(r.Def.Size, 'f', -1, 64),
		string(r.Def.FontStyle),
		string(r.Def.Align),
		strconv.FormatFloat(r.Def.Leading, 'f', -1, 64),
		color,
	}
}

var styleHeaders = []string{"Style", "Size", "Font", "Align", "Leading", "Color"}

func renderStyles(rows []styleRow) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = styleCells(r)
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(styleHeaders...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
