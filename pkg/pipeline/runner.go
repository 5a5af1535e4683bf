package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/cache"
	"github.com/matzehuels/folio/pkg/observability"
)

// Runner executes the pipeline with caching. It holds no per-run state and
// may be shared between goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means the default keyer and a nil logger discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Cache: cache.Observed(c), Keyer: keyer, Logger: logger}
}

// documentMeta is cached under the document key.
type documentMeta struct {
	Pages int `json:"pages"`
}

// Execute loads the inputs and renders every requested format, serving
// artifacts from the cache when all of them are present.
func (r *Runner) Execute(ctx context.Context, opts Options) (res *Result, err error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	loadStart := time.Now()
	in, err := Load(opts)
	if err != nil {
		return nil, err
	}
	docKey := r.Keyer.DocumentKey(in.Key)
	res = &Result{
		DocumentHash: cache.KeyHash(docKey),
		Settings:     in.Builder.Settings,
	}
	res.Stats.LoadTime = time.Since(loadStart)

	cacheable := opts.Cacheable()
	if cacheable && !opts.Refresh {
		if artifacts, pages, ok := r.cached(ctx, docKey, res.DocumentHash, opts); ok {
			res.Artifacts = artifacts
			res.Pages = pages
			res.CacheInfo.RenderHit = true
			r.Logger.Debug("artifacts from cache", "document", res.DocumentHash[:12], "formats", opts.Formats)
			return res, nil
		}
	}

	renderStart := time.Now()
	out, err := Render(ctx, in.Builder, opts)
	if err != nil {
		return nil, err
	}
	res.Artifacts = out.Artifacts
	res.Pages = out.Pages
	res.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered document",
		"pages", out.Pages,
		"formats", opts.Formats,
		"duration", res.Stats.RenderTime)

	if cacheable {
		r.store(ctx, docKey, res, opts)
	}
	return res, nil
}

func (r *Runner) cached(ctx context.Context, docKey, docHash string, opts Options) (map[string][]byte, int, bool) {
	raw, hit, err := r.Cache.Get(ctx, docKey)
	if err != nil || !hit {
		return nil, 0, false
	}
	var meta documentMeta
	if json.Unmarshal(raw, &meta) != nil {
		return nil, 0, false
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(f)))
		if err != nil || !hit {
			return nil, 0, false
		}
		artifacts[f] = data
	}
	return artifacts, meta.Pages, true
}

// store writes artifacts and metadata. Failures are logged, not returned.
func (r *Runner) store(ctx context.Context, docKey string, res *Result, opts Options) {
	for f, data := range res.Artifacts {
		key := r.Keyer.ArtifactKey(res.DocumentHash, opts.ArtifactKeyOpts(f))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", f, "err", err)
		}
	}
	meta, _ := json.Marshal(documentMeta{Pages: res.Pages})
	if err := r.Cache.Set(ctx, docKey, meta, cache.TTLDocument); err != nil {
		r.Logger.Warn("cache write failed", "key", "document", "err", err)
	}
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
