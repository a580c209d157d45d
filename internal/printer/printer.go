// Package printer writes human readable status lines for CLI commands.
// A Printer travels on the context so commands do not need to know where
// output goes.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/colonyops/todo/internal/core/styles"
)

type ctxKey struct{}

// Printer writes styled lines to a writer.
type Printer struct {
	out io.Writer
}

// New returns a Printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stdout.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stdout)
}

// Printf writes an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Infof writes an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.LabelStyle.Render("•"), format, args...)
}

// Successf writes a success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.SuccessStyle.Render(styles.IconComplete), format, args...)
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.WarnStyle.Render(styles.IconOverdue), format, args...)
}

// Errorf writes an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.ErrorStyle.Render(styles.IconFailed), format, args...)
}

func (p *Printer) line(prefix, format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}
