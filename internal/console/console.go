// Package console renders the live view of a sampling run on a plain
// terminal.
package console

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-isatty"
)

// Renderer displays the lines of one tick.
type Renderer interface {
	Render(lines []string) error
}

// Nop discards everything. It backs --silent and tests.
type Nop struct{}

func (Nop) Render([]string) error { return nil }

// Plain writes every tick's lines below the previous ones.
type Plain struct {
	w io.Writer
}

// NewPlain returns a renderer printing lines to w.
func NewPlain(w io.Writer) *Plain {
	return &Plain{w: w}
}

func (p *Plain) Render(lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	_, err := io.WriteString(p.w, strings.Join(lines, "\n")+"\n")
	return err
}

// Live redraws its lines in place. The lines printed for the previous tick
// are erased before the new ones are written.
type Live struct {
	w       io.Writer
	printed int
}

// NewLive returns a renderer redrawing in place on w.
func NewLive(w io.Writer) *Live {
	return &Live{w: w}
}

func (l *Live) Render(lines []string) error {
	var sb strings.Builder
	for i := 0; i < l.printed; i++ {
		sb.WriteString(ansi.CursorUp(1))
		sb.WriteString(ansi.EraseEntireLine)
	}
	sb.WriteString("\r")
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if _, err := io.WriteString(l.w, sb.String()); err != nil {
		return err
	}
	l.printed = len(lines)
	return nil
}

// New picks the renderer for a run: Nop when silent, Live on a terminal,
// Plain otherwise.
func New(f *os.File, silent bool) Renderer {
	if silent {
		return Nop{}
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return NewLive(f)
	}
	return NewPlain(f)
}
