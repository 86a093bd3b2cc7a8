package console

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Printer writes leveled, optionally colored messages for the user
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a Printer writing to out. Color is enabled only when out is a terminal.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, color: ColorEnabled(out)}
}

// NewPlainPrinter creates a Printer that never emits color codes
func NewPlainPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// ColorEnabled reports whether w is a terminal and NO_COLOR is unset
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Write implements io.Writer so a Printer can stand in for a plain output writer
func (p *Printer) Write(b []byte) (int, error) {
	return p.out.Write(b)
}

// Colorize applies colors when enabled
func (p *Printer) Colorize(s string, colors ...text.Color) string {
	if !p.color || len(colors) == 0 {
		return s
	}
	return text.Colors(colors).Sprint(s)
}

// Info prints an informational message
func (p *Printer) Info(format string, args ...any) {
	p.line(p.Colorize("[INFO]", text.FgBlue), format, args...)
}

// Success prints a success message
func (p *Printer) Success(format string, args ...any) {
	p.line(p.Colorize("[SUCCESS]", text.FgGreen), format, args...)
}

// Error prints an error message
func (p *Printer) Error(format string, args ...any) {
	p.line(p.Colorize("[ERROR]", text.FgRed), format, args...)
}

// Warn prints a warning in yellow without a prefix
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.out, p.Colorize(fmt.Sprintf(format, args...), text.FgYellow))
}

// Hint prints a cyan label followed by plain text
func (p *Printer) Hint(label, body string) {
	fmt.Fprintf(p.out, "%s %s\n", p.Colorize(label, text.FgCyan), body)
}

// Heading prints a bold section banner
func (p *Printer) Heading(format string, args ...any) {
	fmt.Fprintln(p.out, p.Colorize(fmt.Sprintf(format, args...), text.Bold))
}

// Println prints a plain line
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

func (p *Printer) line(prefix, format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}
