// Package pipeline turns settings files and Markdown into rendered documents.
//
// The CLI and the HTTP server both go through [Runner], which loads inputs,
// composes the document once per surface kind, renders every requested
// format and caches the artifacts by a hash of the inputs.
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    SettingsFiles: []string{"report.toml"},
//	    Markdown:      "# Q3\n\nRevenue grew.",
//	    Formats:       []string{"pdf", "svg"},
//	})
//	pdfBytes := res.Artifacts["pdf"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/cache"
	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/document"
	"github.com/matzehuels/folio/pkg/errors"
)

// Output formats.
const (
	FormatPDF  = "pdf"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// Defaults.
const (
	DefaultFormat  = FormatPDF
	DefaultScale   = 2.0
	DefaultCreator = "folio"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// Options describes one document and the outputs wanted from it. It is
// also the JSON body of the server's render endpoint.
type Options struct {
	// SettingsFiles are TOML or JSON settings files, most authoritative
	// first.
	SettingsFiles []string `json:"-"`
	// Settings outrank every settings file.
	Settings config.Tree `json:"settings,omitempty"`

	Markdown string `json:"markdown,omitempty"`
	Header   string `json:"header,omitempty"`
	Footer   string `json:"footer,omitempty"`

	Formats []string `json:"formats,omitempty"`
	Title   string   `json:"title,omitempty"`
	Author  string   `json:"author,omitempty"`
	// Scale is the PNG raster scale.
	Scale   float64 `json:"scale,omitempty"`
	Refresh bool    `json:"refresh,omitempty"`

	// Template supplies shared settings, styles and content. Nil means
	// document.DefaultTemplate().
	Template *document.Template `json:"-"`
	Logger   *log.Logger        `json:"-"`

	validated bool
}

// Result holds the outputs of one run.
type Result struct {
	// Artifacts are keyed by format.
	Artifacts map[string][]byte
	// Pages is the page count of the document.
	Pages int
	// DocumentHash identifies the inputs.
	DocumentHash string
	// Settings is the merged builder settings.
	Settings  config.Tree
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timing information.
type Stats struct {
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo records whether the artifacts came from the cache.
type CacheInfo struct {
	RenderHit bool
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: %s)",
			format, strings.Join(sortedFormats(), ", "))
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func sortedFormats() []string {
	out := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// ValidateAndSetDefaults checks the options and fills defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if err := errors.ValidatePositive("scale", o.Scale); err != nil {
		return err
	}
	if o.Template == nil {
		o.Template = document.DefaultTemplate()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	o.validated = true
	return nil
}

// Cacheable reports whether the output depends only on hashable inputs.
// Template content callbacks cannot be hashed.
func (o *Options) Cacheable() bool {
	c := o.Template.Contents
	return c.Header == nil && c.Body == nil && c.Footer == nil
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		opts.Scale = o.Scale
	case FormatPDF:
		opts.Title = o.Title + "\x00" + o.Author
	}
	return opts
}

func (o *Options) needs(format string) bool {
	return slices.Contains(o.Formats, format)
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
