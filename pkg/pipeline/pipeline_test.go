package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/folio/pkg/cache"
	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/document"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/observability"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"docx", true},
		{"SVG", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Formats: []string{" SVG", "svg", "json"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"svg", "json"}, opts.Formats); diff != "" {
		t.Errorf("formats (-want +got):\n%s", diff)
	}
	if opts.Scale != DefaultScale || opts.Template == nil || opts.Logger == nil {
		t.Errorf("defaults not applied: %+v", opts)
	}

	empty := Options{}
	if err := empty.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{DefaultFormat}, empty.Formats); diff != "" {
		t.Errorf("default formats (-want +got):\n%s", diff)
	}

	bad := Options{Scale: -1}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("negative scale err = %v", err)
	}
}

func writeSettings(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPrecedence(t *testing.T) {
	first := writeSettings(t, "first.toml", "[header]\nheight = 60\n")
	second := writeSettings(t, "second.toml", "[header]\nheight = 30\nbottom_padding = 4\n")

	opts := Options{
		SettingsFiles: []string{first, second},
		Settings:      config.Tree{"footer": config.Tree{"height": 20}},
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	in, err := Load(opts)
	if err != nil {
		t.Fatal(err)
	}
	header := in.Builder.Settings.Branch("header")
	if h, _ := header.Float("height"); h != 60 {
		t.Errorf("header.height = %v, want 60 from the first file", h)
	}
	if p, _ := header.Float("bottom_padding"); p != 4 {
		t.Errorf("header.bottom_padding = %v, want 4", p)
	}
	if h, _ := in.Builder.Settings.Branch("footer").Float("height"); h != 20 {
		t.Errorf("footer.height = %v, want 20", h)
	}
}

func TestLoadMissingFile(t *testing.T) {
	opts := Options{SettingsFiles: []string{filepath.Join(t.TempDir(), "nope.toml")}}
	_ = opts.ValidateAndSetDefaults()
	if _, err := Load(opts); err == nil {
		t.Error("missing settings file should fail")
	}
}

func TestExecuteRendersFormats(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Markdown: "# Title\n\nHello.\n",
		Footer:   "Confidential",
		Formats:  []string{"json", "svg", "pdf"},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"json", "svg", "pdf"} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !bytes.HasPrefix(res.Artifacts["pdf"], []byte("%PDF")) {
		t.Error("pdf artifact is not a PDF")
	}
	if !bytes.Contains(res.Artifacts["svg"], []byte("Hello.")) {
		t.Error("svg artifact lacks body text")
	}
	if res.Pages != 1 {
		t.Errorf("pages = %d, want 1", res.Pages)
	}
	if len(res.DocumentHash) != 64 {
		t.Errorf("document hash = %q", res.DocumentHash)
	}
}

func TestExecuteUsesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()
	opts := Options{Markdown: "Cached body", Formats: []string{"json"}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run hit the cache")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run missed the cache")
	}
	if !bytes.Equal(first.Artifacts["json"], second.Artifacts["json"]) || second.Pages != first.Pages {
		t.Error("cached result differs")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh served from cache")
	}

	opts.Refresh = false
	opts.Markdown = "Other body"
	other, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if other.CacheInfo.RenderHit || other.DocumentHash == first.DocumentHash {
		t.Error("different content shared a cache entry")
	}
}

func TestExecuteSkipsCacheForTemplateContent(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	tpl := document.DefaultTemplate()
	tpl.Contents.Header = func(cv *document.Canvas) { cv.Write("Letterhead") }

	for i := 0; i < 2; i++ {
		res, err := r.Execute(context.Background(), Options{Template: tpl, Formats: []string{"json"}})
		if err != nil {
			t.Fatal(err)
		}
		if res.CacheInfo.RenderHit {
			t.Errorf("run %d hit the cache", i)
		}
	}
}

func TestExecuteFailsOnBadSettings(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{
		Settings: config.Tree{"header": config.Tree{"height": 900}},
		Formats:  []string{"json"},
	})
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("err = %v, want CONFIGURATION", err)
	}
}

type pipelineHooks struct {
	observability.NoopPipelineHooks
	started, completed int
	err                error
}

func (h *pipelineHooks) OnRenderStart(context.Context, []string) { h.started++ }
func (h *pipelineHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	h.completed++
	h.err = err
}

func TestExecuteCallsHooks(t *testing.T) {
	hooks := &pipelineHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Formats: []string{"json"}}); err != nil {
		t.Fatal(err)
	}
	_, err := r.Execute(context.Background(), Options{Formats: []string{"docx"}})
	if err == nil {
		t.Fatal("invalid format accepted")
	}
	if hooks.started != 1 || hooks.completed != 1 || hooks.err != nil {
		t.Errorf("hooks = %+v", hooks)
	}
}
