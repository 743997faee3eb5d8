package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/vbeat/internal/judge"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) RenderNote(lane uint8) string {
	c := getLaneColor(lane)
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, noteSym)
}

func (t *DefaultTheme) RenderReceptor(lane uint8) string {
	return receptorSym
}

func (t *DefaultTheme) RenderJudgement(band judge.Band) string {
	c := t.JudgementColor(band)
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%5v\033[0m", c.R, c.G, c.B, band)
}

func (t *DefaultTheme) JudgementColor(band judge.Band) color.RGBA {
	col, ok := judgementColors[band]
	if !ok {
		return laneColors[-1]
	}
	return col
}

const (
	noteSym     = "⬤"
	receptorSym = "◯"
)

var (
	// Mirrored around the middle, so 4key and 6key share colours
	laneColors = map[int]color.RGBA{
		0:  {106, 0, 236, 255},   // purple
		1:  {236, 30, 0, 255},    // red
		2:  {0, 118, 236, 255},   // blue
		3:  {0, 118, 236, 255},   // blue
		4:  {236, 30, 0, 255},    // red
		5:  {106, 0, 236, 255},   // purple
		-1: {255, 255, 255, 255}, // other white
	}
	judgementColors = map[judge.Band]color.RGBA{
		judge.Great: {173, 236, 236, 255}, // light blue
		judge.Good:  {0, 236, 128, 255},   // green
		judge.Miss:  {236, 30, 0, 255},    // red
	}
)

func getLaneColor(lane uint8) color.RGBA {
	col, ok := laneColors[int(lane)]
	if !ok {
		return laneColors[-1]
	}
	return col
}
