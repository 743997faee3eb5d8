package game

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/slices"
)

// ChartError rejects a chart before a session can be started with it.
type ChartError struct {
	Index  int // The offending row, -1 if not row specific
	Reason string
}

func (e *ChartError) Error() string {
	if e.Index < 0 {
		return "invalid chart: " + e.Reason
	}
	return fmt.Sprintf("invalid chart: row %d: %s", e.Index, e.Reason)
}

// Chart is immutable once built, rows can be referenced by index for the
// lifetime of a session.
type Chart struct {
	Difficulty Difficulty

	rows      []NoteRow
	noteCount int
}

func NewChart(rows []NoteRow, difficulty Difficulty) (*Chart, error) {
	if !slices.IsSortedFunc(rows, func(a, b NoteRow) bool { return a.Ms < b.Ms }) {
		for i := 1; i < len(rows); i++ {
			if rows[i].Ms < rows[i-1].Ms {
				return nil, &ChartError{
					Index:  i,
					Reason: fmt.Sprintf("timestamp %vms is before previous row %vms", rows[i].Ms, rows[i-1].Ms),
				}
			}
		}
	}

	count := 0
	for i, row := range rows {
		if row.Columns&NoteMask == 0 {
			return nil, &ChartError{Index: i, Reason: "row has no notes"}
		}
		count += row.NoteCount()
	}

	return &Chart{
		Difficulty: difficulty,
		rows:       slices.Clone(rows),
		noteCount:  count,
	}, nil
}

func (c *Chart) Len() int {
	return len(c.rows)
}

func (c *Chart) Row(i int) NoteRow {
	return c.rows[i]
}

// Rows returns a copy, the chart itself is never handed out for mutation
func (c *Chart) Rows() []NoteRow {
	return slices.Clone(c.rows)
}

// End is the timestamp of the last row, 0 for an empty chart.
func (c *Chart) End() uint32 {
	if len(c.rows) == 0 {
		return 0
	}
	return c.rows[len(c.rows)-1].Ms
}

func (c *Chart) NoteCount() int {
	return c.noteCount
}

// Hash identifies the note content of the chart, independent of its metadata.
func (c *Chart) Hash() string {
	h := sha256.New()
	buf := make([]byte, 5)
	for _, row := range c.rows {
		binary.LittleEndian.PutUint32(buf, row.Ms)
		buf[4] = row.Columns
		h.Write(buf)
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
