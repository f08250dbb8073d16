package hcl

import "github.com/ardnew/hcl/internal/xlog"

// Context is a lexical scope the evaluator consults when resolving a
// Variable or a FuncCall: a mapping from name to Value, a mapping from name
// to *Function, and an optional parent Context to fall back to. Contexts
// are immutable once built — extending one for a nested scope (a
// for-expression's loop variables, a function body) means building a new
// child Context rather than mutating an existing one.
type Context struct {
	parent *Context
	vars   map[string]Value
	funcs  map[string]*Function
	logger xlog.Logger
}

// NewContext returns an empty root Context.
func NewContext() *Context {
	return &Context{}
}

// ChildContext returns a new Context scoped under parent, with vars bound
// as additional local variables. A nil parent is the same as NewContext
// plus vars. The child inherits parent's Logger.
func ChildContext(parent *Context, vars map[string]Value) *Context {
	c := &Context{parent: parent, vars: vars}
	if parent != nil {
		c.logger = parent.logger
	}

	return c
}

// Logger returns the xlog.Logger attached to c: the one set via
// ContextBuilder.WithLogger, else the parent's, else the zero (no-op)
// Logger.
func (c *Context) Logger() xlog.Logger {
	if c == nil {
		return xlog.Logger{}
	}

	return c.logger
}

// Variable looks up name in c and its ancestors, nearest scope first.
func (c *Context) Variable(name string) (Value, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}

	return Value{}, false
}

// Function looks up name in c and its ancestors, nearest scope first.
func (c *Context) Function(name string) (*Function, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if f, ok := cur.funcs[name]; ok {
			return f, true
		}
	}

	return nil, false
}

// VariableNames reports every variable name visible from c, nearest scope
// first, without duplicates. It exists to drive the "did you mean" spelling
// suggestion attached to an unknown-variable diagnostic.
func (c *Context) VariableNames() []string {
	seen := map[string]bool{}

	var names []string

	for cur := c; cur != nil; cur = cur.parent {
		for name := range cur.vars {
			if !seen[name] {
				seen[name] = true

				names = append(names, name)
			}
		}
	}

	return names
}

// ContextBuilder accumulates variable and function bindings for a single
// Context before it is frozen by Build. It exists because Context itself
// has no exported mutators — construction is the one place bindings are
// assembled imperatively.
type ContextBuilder struct {
	parent *Context
	vars   map[string]Value
	funcs  map[string]*Function
	logger xlog.Logger
}

// NewContextBuilder starts a builder for a Context whose parent is parent
// (nil for a root Context).
func NewContextBuilder(parent *Context) *ContextBuilder {
	return &ContextBuilder{parent: parent}
}

// DeclareVariable binds name to v.
func (b *ContextBuilder) DeclareVariable(name string, v Value) *ContextBuilder {
	if b.vars == nil {
		b.vars = map[string]Value{}
	}

	b.vars[name] = v

	return b
}

// DeclareFunction binds name to fn.
func (b *ContextBuilder) DeclareFunction(name string, fn *Function) *ContextBuilder {
	if b.funcs == nil {
		b.funcs = map[string]*Function{}
	}

	b.funcs[name] = fn

	return b
}

// WithLogger attaches logger, used to trace variable/function resolution
// during evaluation. With the zero xlog.Logger, Build inherits the
// parent's logger, which is a no-op when there is no parent logger.
func (b *ContextBuilder) WithLogger(logger xlog.Logger) *ContextBuilder {
	b.logger = logger

	return b
}

// Build freezes the accumulated bindings into a Context.
func (b *ContextBuilder) Build() *Context {
	logger := b.logger
	if logger.IsZero() && b.parent != nil {
		logger = b.parent.logger
	}

	return &Context{parent: b.parent, vars: b.vars, funcs: b.funcs, logger: logger}
}
