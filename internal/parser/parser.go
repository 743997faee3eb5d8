package parser

import (
	"fmt"
	"path"
	"strings"

	"git.lost.host/meutraa/vbeat/internal/game"
)

type Parser interface {
	Parse(file string) ([]*game.Chart, error)
}

// ForFile picks a parser by file extension.
func ForFile(file string) (Parser, error) {
	switch strings.ToLower(path.Ext(file)) {
	case ".sm":
		return &DefaultParser{}, nil
	case ".mid", ".midi":
		return &MidiParser{BaseKey: DefaultBaseKey}, nil
	}
	return nil, fmt.Errorf("no parser for %v", file)
}

// appendRow adds lanes at ms, merging with the last row if they share a time.
func appendRow(rows []game.NoteRow, ms uint32, columns uint8) []game.NoteRow {
	if n := len(rows); n > 0 && rows[n-1].Ms == ms {
		rows[n-1].Columns |= columns
		return rows
	}
	return append(rows, game.NoteRow{Ms: ms, Columns: columns})
}
