package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"bonk/internal/diag"
	"bonk/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch {
	case s >= diag.SevError:
		return p.err
	case s == diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее):
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	   2 | bowl s = 1 + "x";
//	     |          ^~~~~~~
//	  note: <path>:<line>:<col>: <Msg>
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		f := fs.Get(d.Primary.File)
		start, end := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			displayPath(f, opts.PathMode, opts.BaseDir), start.Line, start.Col,
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		if f != nil && start.Line > 0 {
			excerpt(w, p, p.severity(d.Severity), f, start, end, opts.Context)
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			pos, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
				p.note.Sprint("note:"),
				displayPath(nf, opts.PathMode, opts.BaseDir), pos.Line, pos.Col, n.Msg)
		}
	}
}

// excerpt prints the primary line with up to context preceding lines and a
// caret underline. Spans that cross lines are underlined to the end of the
// first one.
func excerpt(w io.Writer, p palette, accent *color.Color, f *source.File, start, end source.LineCol, context int) {
	first := start.Line
	if context > 0 && uint32(context) < first {
		first -= uint32(context)
	} else if context > 0 {
		first = 1
	}
	width := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, ln), f.GetLine(ln))
	}

	line := f.GetLine(start.Line)
	from := min(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(line))
	}
	to = max(to, from)
	pad := padding(line[:from])
	n := max(runewidth.StringWidth(line[from:to]), 1)
	marks := "^" + strings.Repeat("~", n-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), pad, accent.Sprint(marks))
}

// padding keeps tabs so the caret lines up with the source line.
func padding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

// Short prints one line per diagnostic: <path>:<line>:<col>: <SEV> <CODE>: <Message>.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		pos, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			displayPath(fs.Get(d.Primary.File), mode, ""), pos.Line, pos.Col,
			d.Severity, d.Code.ID(), d.Message)
	}
}
