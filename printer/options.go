package printer

// Printer renders AST nodes to HCL source text under a fixed set of
// formatting rules. Its zero value is never used directly; build one
// through New so the defaults below are always applied first.
type Printer struct {
	indentWidth     int
	preferIdentKeys bool
	compactArrays   bool
	compactObjects  bool
	strictMode      bool
}

// Option configures a Printer constructed by New.
type Option func(*Printer)

// WithIndentWidth sets the number of spaces used per nesting level. The
// default is 2.
func WithIndentWidth(n int) Option {
	return func(p *Printer) { p.indentWidth = n }
}

// WithPreferIdentKeys controls whether object keys written as quoted
// strings whose text is a valid identifier are emitted unquoted
// (`key = value`) rather than quoted (`"key" = value`). Keys written as
// bare identifiers print bare either way. Default false.
func WithPreferIdentKeys(b bool) Option {
	return func(p *Printer) { p.preferIdentKeys = b }
}

// WithCompactArrays renders array constructors on a single line
// (`[1, 2, 3]`) instead of one element per line. Default false.
func WithCompactArrays(b bool) Option {
	return func(p *Printer) { p.compactArrays = b }
}

// WithCompactObjects renders object constructors on a single line
// (`{a = 1, b = 2}`) instead of one item per line. Default false.
func WithCompactObjects(b bool) Option {
	return func(p *Printer) { p.compactObjects = b }
}

// WithStrictMode rejects identifiers that do not match the grammar instead
// of silently falling back to a quoted-string rendering. Default false.
func WithStrictMode(b bool) Option {
	return func(p *Printer) { p.strictMode = b }
}

// New builds a Printer from opts, applying defaults first so every Option
// only needs to override what it cares about.
func New(opts ...Option) *Printer {
	p := &Printer{indentWidth: 2}

	for _, opt := range opts {
		opt(p)
	}

	return p
}
