package printer

import (
	"io"
	"strings"
)

// pw is a sticky-error writer: once a write fails every subsequent call is
// a no-op, so the long recursive descent through writeExpr/writeBody never
// needs to check an error return at every call site — only once, at the
// end, via err.
type pw struct {
	w   io.Writer
	err error
}

func (p *pw) str(s string) {
	if p.err != nil {
		return
	}

	_, p.err = io.WriteString(p.w, s)
}

func (p *pw) indent(depth, width int) {
	if depth <= 0 || width <= 0 {
		return
	}

	p.str(strings.Repeat(" ", depth*width))
}
