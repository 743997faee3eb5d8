package theme

import (
	"image/color"

	"git.lost.host/meutraa/vbeat/internal/judge"
)

type Theme interface {
	RenderNote(lane uint8) string
	RenderReceptor(lane uint8) string
	RenderJudgement(band judge.Band) string
	JudgementColor(band judge.Band) color.RGBA
}
