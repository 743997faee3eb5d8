package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

type DefaultRenderer struct {
	Out io.Writer // Defaults to stdout

	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
	rows, cols   int
}

type decoration struct {
	X, Y    int
	Content string
	Frames  int // remaining frames until removed
}

func (r *DefaultRenderer) out() io.Writer {
	if nil == r.Out {
		return os.Stdout
	}
	return r.Out
}

func (r *DefaultRenderer) Init() error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("stdout is not a terminal")
	}
	cols, rows, err := term.GetSize(fd)
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}
	r.rows, r.cols = rows, cols

	state, err := term.MakeRaw(fd)
	if nil != err {
		return err
	}
	r.restoreState = state

	fmt.Fprintf(r.out(), "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Fprintf(r.out(), "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if nil == r.restoreState {
		return nil
	}
	return term.Restore(int(os.Stdout.Fd()), r.restoreState)
}

func (r *DefaultRenderer) Size() (int, int) {
	return r.rows, r.cols
}

// SetSize overrides the terminal size, for rendering off screen.
func (r *DefaultRenderer) SetSize(rows, cols int) {
	r.rows, r.cols = rows, cols
}

func (r *DefaultRenderer) AddDecoration(row, col int, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			continue
		}
		r.Fill(d.Y, d.X, d.Content)
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

// RenderLoop calls frame with the wall time since the previous frame until
// it returns false, waiting out the rest of each period.
func (r *DefaultRenderer) RenderLoop(period time.Duration, frame func(delta time.Duration) bool) {
	last := time.Now()
	for {
		now := time.Now()
		delta := now.Sub(last)
		last = now
		deadline := now.Add(period)

		r.buffer.WriteString("\033[2J")
		if !frame(delta) {
			return
		}

		r.tickDecorations()
		r.Flush()

		time.Sleep(time.Until(deadline))
	}
}

func (r *DefaultRenderer) Fill(row, column int, message string) {
	if row < 1 || column < 1 || (r.rows > 0 && row > r.rows) || (r.cols > 0 && column > r.cols) {
		return
	}
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) FillColor(row, column int, c color.RGBA, message string) {
	r.Fill(row, column, "\033[38;2;"+
		strconv.FormatInt(int64(c.R), 10)+";"+
		strconv.FormatInt(int64(c.G), 10)+";"+
		strconv.FormatInt(int64(c.B), 10)+"m"+
		message+"\033[0m")
}

func (r *DefaultRenderer) Flush() {
	r.out().Write([]byte(r.buffer.String()))
	r.buffer.Reset()
}
