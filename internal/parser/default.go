package parser

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"git.lost.host/meutraa/vbeat/internal/game"
)

// DefaultParser reads StepMania .sm files.
type DefaultParser struct{}

func (p *DefaultParser) getSecondsPerNote(rates []game.BPM, currentBeat float64, bpn float64) float64 {
	sel := rates[0].Value
	for _, bpm := range rates {
		if currentBeat >= bpm.StartingBeat {
			sel = bpm.Value
		} else {
			break
		}
	}
	secondsPerBeat := 60.0 / sel
	return bpn * secondsPerBeat
}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note

// Holds and rolls are judged on their head only.
func (p *DefaultParser) isTap(ch byte) bool {
	return ch == '1' || ch == '2' || ch == '4'
}

func (p *DefaultParser) Parse(file string) ([]*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	return p.parse(string(data))
}

func (p *DefaultParser) parse(data string) ([]*game.Chart, error) {
	str := strings.ReplaceAll(data, "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]
	difficulties := []game.Difficulty{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			continue
		}
		chartType := strings.TrimSpace(lines[1])
		chartType = strings.TrimSuffix(chartType, ":")
		nKeys, ok := game.NKeyMap[chartType]
		if !ok {
			continue
		}
		difficulties = append(difficulties, game.Difficulty{
			Name:    strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
			Msd:     strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
			Section: lines[6],
			NKeys:   nKeys,
		})
	}

	offset := 0.0
	bpms := []game.BPM{}

	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		if strings.HasPrefix(mdl, "OFFSET:") {
			mdl = strings.TrimPrefix(mdl, "OFFSET:")
			mdl = strings.TrimSuffix(mdl, ";")
			offs, err := strconv.ParseFloat(strings.TrimSpace(mdl), 64)
			if nil != err {
				return nil, fmt.Errorf("unable to parse offset: %w", err)
			}
			offset = -offs
		} else if strings.HasPrefix(mdl, "BPMS:") {
			mdl = strings.TrimPrefix(mdl, "BPMS:")
			mdl = strings.ReplaceAll(mdl, "\n", "")
			bbs := strings.Split(strings.TrimSuffix(mdl, ";"), ",")
			for _, bpm := range bbs {
				as := strings.Split(bpm, "=")
				if len(as) != 2 {
					return nil, fmt.Errorf("unable to parse bpm %q", bpm)
				}
				sb, err := strconv.ParseFloat(strings.TrimSpace(as[0]), 64)
				if nil != err {
					return nil, err
				}
				bbbs, err := strconv.ParseFloat(strings.TrimSpace(as[1]), 64)
				if nil != err {
					return nil, err
				}
				if bbbs <= 0 {
					return nil, fmt.Errorf("bpm %v at beat %v is not positive", bbbs, sb)
				}
				bpms = append(bpms, game.BPM{
					StartingBeat: sb,
					Value:        bbbs,
				})
			}
		}
	}
	if len(bpms) == 0 {
		return nil, errors.New("chart has no bpms")
	}

	charts := []*game.Chart{}
	for _, difficulty := range difficulties {
		// Start time of first note
		seconds := offset
		var currentBeat float64 = 0.0

		rows := []game.NoteRow{}
		blocks := strings.Split(strings.SplitN(difficulty.Section, ";", 2)[0], "\n,")

		for _, block := range blocks {
			lines := []string{}
			bls := strings.Split(block, "\n")
			for _, l := range bls {
				if strings.HasPrefix(l, " ") || strings.Contains(l, "-") || strings.HasPrefix(l, "//") {
					continue
				}
				l = strings.TrimSpace(l)
				if len(l) >= int(difficulty.NKeys) {
					lines = append(lines, l)
				}
			}
			if len(lines) == 0 {
				continue
			}

			// Beat count is 4 per block
			lineCount := int64(len(lines))
			beatsPerNote := 4.0 / float64(lineCount) // 1/4, 1/8, 1/16, 1/24 etc

			// for each note line in a block
			for _, line := range lines {
				secondsPerNote := p.getSecondsPerNote(bpms, currentBeat, beatsPerNote)

				var columns uint8
				for i := 0; i < int(difficulty.NKeys); i++ {
					if p.isTap(line[i]) {
						columns |= 1 << difficulty.Lane(i)
					}
				}

				if columns != 0 {
					ms := math.Round(seconds * 1000)
					if ms < 0 {
						return nil, &game.ChartError{
							Index:  len(rows),
							Reason: fmt.Sprintf("%v: note at %vms is before the song starts", difficulty.Name, ms),
						}
					}
					rows = appendRow(rows, uint32(ms), columns)
				}

				seconds += secondsPerNote
				currentBeat += beatsPerNote
			}
		}

		chart, err := game.NewChart(rows, difficulty)
		if nil != err {
			return nil, fmt.Errorf("%v: %w", difficulty.Name, err)
		}
		charts = append(charts, chart)
	}

	return charts, nil
}
