package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/folio/pkg/cache"
	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/content"
	"github.com/matzehuels/folio/pkg/document"
	"github.com/matzehuels/folio/pkg/style"
)

// Inputs are the loaded, not yet rendered, parts of a document.
type Inputs struct {
	Builder *document.Builder
	Key     cache.DocumentKeyOpts
}

// Load reads the settings files, merges them under the inline settings and
// parses the Markdown body.
func Load(opts Options) (*Inputs, error) {
	files, err := config.LoadFiles(opts.SettingsFiles...)
	if err != nil {
		return nil, err
	}
	settings := config.Merge(append([]config.Tree{opts.Settings}, files...)...)

	b := &document.Builder{Settings: settings}
	if opts.Markdown != "" {
		body, err := content.Markdown([]byte(opts.Markdown))
		if err != nil {
			return nil, err
		}
		b.Contents.Body = body
	}
	if opts.Header != "" {
		b.Contents.Header = writer(opts.Header)
	}
	if opts.Footer != "" {
		b.Contents.Footer = writer(opts.Footer)
	}

	key, err := documentKey(opts, settings)
	if err != nil {
		return nil, err
	}
	return &Inputs{Builder: b, Key: key}, nil
}

// writer draws plain text in the region's style.
func writer(text string) document.ContentFunc {
	return func(cv *document.Canvas) { cv.Write(text) }
}

func documentKey(opts Options, settings config.Tree) (cache.DocumentKeyOpts, error) {
	s, err := json.Marshal([]config.Tree{settings, opts.Template.Settings})
	if err != nil {
		return cache.DocumentKeyOpts{}, err
	}
	c, err := json.Marshal([]string{opts.Markdown, opts.Header, opts.Footer})
	if err != nil {
		return cache.DocumentKeyOpts{}, err
	}
	sheet, err := sheetFingerprint(opts.Template.Sheet)
	if err != nil {
		return cache.DocumentKeyOpts{}, err
	}
	return cache.DocumentKeyOpts{Settings: s, Content: c, Sheet: sheet}, nil
}

func sheetFingerprint(s *style.Sheet) (string, error) {
	if s == nil {
		return "", nil
	}
	rules := make(map[string]style.Rule)
	for _, name := range s.Names() {
		r, _ := s.Rule(name)
		rules[name] = r
	}
	data, err := json.Marshal(struct {
		Base  style.Definition      `json:"base"`
		Rules map[string]style.Rule `json:"rules"`
	}{s.Base(), rules})
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
