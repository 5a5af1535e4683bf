package config

// Default page and region settings.
const (
	DefaultPageSize     = "A4"
	DefaultPageLayout   = "portrait"
	DefaultSideMargin   = 54.0
	DefaultTopMargin    = 36.0
	DefaultBottomMargin = 36.0

	DefaultRegionHeight    = 33.0
	DefaultRegionPadding   = 20.0
	DefaultNumberingString = "<page>"
	DefaultNumberingAlign  = "right"
	DefaultStartCountAt    = 1
)

// Defaults returns the document-level defaults, the least authoritative
// source after the component defaults.
func Defaults() Tree {
	return Tree{
		"page_size":     DefaultPageSize,
		"page_layout":   DefaultPageLayout,
		"left_margin":   DefaultSideMargin,
		"right_margin":  DefaultSideMargin,
		"top_margin":    DefaultTopMargin,
		"bottom_margin": DefaultBottomMargin,
		KeyHeader: Tree{
			"render": true,
		},
		KeyFooter: Tree{
			"render": true,
		},
		KeyBody: Tree{},
	}
}

// ComponentDefaults returns the per-region defaults. footerStyle is the
// resolved footer text style; it becomes footer.style.
func ComponentDefaults(footerStyle Tree) Tree {
	if footerStyle == nil {
		footerStyle = Tree{}
	}
	return Tree{
		KeyHeader: Tree{
			"height":         DefaultRegionHeight,
			"bottom_padding": DefaultRegionPadding,
			"repeated":       true,
		},
		KeyFooter: Tree{
			"height":           DefaultRegionHeight,
			"top_padding":      DefaultRegionPadding,
			"repeated":         true,
			"number_pages":     true,
			"numbering_string": DefaultNumberingString,
			"numbering_options": Tree{
				"align":          DefaultNumberingAlign,
				"start_count_at": DefaultStartCountAt,
			},
			"style": footerStyle,
		},
		KeyBody: Tree{
			"render": true,
		},
	}
}
