package typegraph

// EvalMode controls forward-reference resolution during a build
type EvalMode int

const (
	// EvalEager resolves forward references immediately; unresolvable
	// references fail the build
	EvalEager EvalMode = iota
	// EvalDeferred keeps forward references as unresolved nodes retaining
	// name and namespace for later resolution
	EvalDeferred
	// EvalStringified keeps the literal reference name, no resolution attempt
	EvalStringified
)

// Config is an immutable inspection configuration. Defaults: eager
// evaluation, unbounded depth, hoisting and member inclusion on, source
// tracking off.
type Config struct {
	Mode           EvalMode
	MaxDepth       int
	HoistMetadata  bool
	IncludeMembers bool
	TrackSource    bool
}

// Option build option
type Option func(c *Config)

// Options represents build options
type Options []Option

// Apply applies options
func (o Options) Apply(c *Config) {
	if len(o) == 0 {
		return
	}
	for _, opt := range o {
		opt(c)
	}
}

// NewConfig returns the default config adjusted by options
func NewConfig(opts ...Option) Config {
	config := Config{
		Mode:           EvalEager,
		MaxDepth:       0,
		HoistMetadata:  true,
		IncludeMembers: true,
		TrackSource:    false,
	}
	Options(opts).Apply(&config)
	return config
}

// WithMode sets the forward-reference evaluation mode
func WithMode(mode EvalMode) Option {
	return func(c *Config) {
		c.Mode = mode
	}
}

// WithMaxDepth bounds build recursion: descriptions reached at depth maxDepth
// (root = depth 0) become depthBound markers instead of expanding. Zero or
// negative means unbounded. Bounded configs bypass the memoization cache.
func WithMaxDepth(maxDepth int) Option {
	return func(c *Config) {
		c.MaxDepth = maxDepth
	}
}

// WithoutHoisting keeps wrapper metadata on a distinct annotated node instead
// of merging it onto the wrapped base node.
func WithoutHoisting() Option {
	return func(c *Config) {
		c.HoistMetadata = false
	}
}

// WithoutMembers builds record nodes without field children
func WithoutMembers() Option {
	return func(c *Config) {
		c.IncludeMembers = false
	}
}

// WithSourceTracking records source locations reported by descriptions
func WithSourceTracking() Option {
	return func(c *Config) {
		c.TrackSource = true
	}
}

type fingerprint struct {
	mode     EvalMode
	maxDepth int
	hoist    bool
	members  bool
	source   bool
}

func (c Config) fingerprint() fingerprint {
	return fingerprint{
		mode:     c.Mode,
		maxDepth: c.MaxDepth,
		hoist:    c.HoistMetadata,
		members:  c.IncludeMembers,
		source:   c.TrackSource,
	}
}
