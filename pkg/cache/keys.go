package cache

// Keyer builds cache keys.
type Keyer interface {
	// DocumentKey identifies a composed document.
	DocumentKey(opts DocumentKeyOpts) string
	// ArtifactKey identifies one output format of a document.
	ArtifactKey(documentHash string, opts ArtifactKeyOpts) string
}

// DocumentKeyOpts are the inputs that determine a document.
type DocumentKeyOpts struct {
	// Settings is the canonical encoding of the merged settings.
	Settings []byte
	// Content is the body source.
	Content []byte
	// Sheet names the style sheet in use.
	Sheet string
}

// ArtifactKeyOpts are the output options that determine an artifact.
type ArtifactKeyOpts struct {
	Format string
	Scale  float64
	Title  string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DocumentKey implements Keyer.
func (DefaultKeyer) DocumentKey(opts DocumentKeyOpts) string {
	return hashKey("doc", Hash(opts.Settings), Hash(opts.Content), opts.Sheet)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(documentHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", documentHash, opts.Format, opts.Scale, opts.Title)
}

var _ Keyer = DefaultKeyer{}
