package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// TerminalDisplay prints to a terminal. On a TTY lines are rendered as
// markdown code spans so "**" is not taken for bold; elsewhere plain text.
type TerminalDisplay struct {
	out      io.Writer
	renderer *glamour.TermRenderer
	profile  termenv.Profile
	plain    bool
}

func NewTerminalDisplay(out *os.File) *TerminalDisplay {
	d := &TerminalDisplay{out: out, plain: true, profile: termenv.Ascii}
	if !term.IsTerminal(int(out.Fd())) {
		return d
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return d
	}
	d.renderer = r
	d.plain = false
	d.profile = termenv.NewOutput(out).Profile
	return d
}

// NewPlainDisplay writes lines unchanged, one per line.
func NewPlainDisplay(out io.Writer) *TerminalDisplay {
	return &TerminalDisplay{out: out, plain: true, profile: termenv.Ascii}
}

func (d *TerminalDisplay) Show(line string) error {
	if d.plain {
		_, err := fmt.Fprintln(d.out, line)
		return err
	}

	md, err := d.renderer.Render(markdownLine(line))
	if err != nil {
		_, err = fmt.Fprintln(d.out, line)
		return err
	}
	_, err = fmt.Fprint(d.out, strings.TrimLeft(md, "\n"))
	return err
}

func (d *TerminalDisplay) ShowError(line string) error {
	if d.plain {
		_, err := fmt.Fprintln(d.out, line)
		return err
	}
	styled := termenv.String(line).Foreground(d.profile.Color("1")).Bold()
	_, err := fmt.Fprintln(d.out, styled.String())
	return err
}

// markdownLine keeps the label readable and puts the math in a code span.
func markdownLine(line string) string {
	label, rest, ok := strings.Cut(line, ": ")
	if !ok || strings.ContainsRune(label, '`') || strings.ContainsRune(rest, '`') {
		return "`" + strings.ReplaceAll(line, "`", "'") + "`"
	}
	return "**" + label + ":** `" + rest + "`"
}
