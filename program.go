package main

import (
	"fmt"
	"math"
	"time"

	"git.lost.host/meutraa/vbeat/internal/audio"
	"git.lost.host/meutraa/vbeat/internal/config"
	"git.lost.host/meutraa/vbeat/internal/game"
	"git.lost.host/meutraa/vbeat/internal/input"
	"git.lost.host/meutraa/vbeat/internal/judge"
	"git.lost.host/meutraa/vbeat/internal/play"
	"git.lost.host/meutraa/vbeat/internal/render"
	"git.lost.host/meutraa/vbeat/internal/score"
	"git.lost.host/meutraa/vbeat/internal/theme"
	"github.com/rs/zerolog/log"
)

// EventSource is polled once per frame.
type EventSource interface {
	Drain() []input.Event
}

// Program draws a session to the terminal. It only reads judging state.
type Program struct {
	Config *config.Config
	Chart  *game.Chart
	Source EventSource
	Player *audio.Player
	Scorer score.Scorer

	Renderer render.Renderer
	Theme    theme.Theme

	session *play.Session
	score   score.Score
	logged  int // Results already shown

	columns map[uint8]int // Screen column of each lane
	hitRow  int
	sideCol int
}

func (p *Program) Init() error {
	if nil == p.Renderer {
		p.Renderer = &render.DefaultRenderer{}
	}
	if nil == p.Theme {
		p.Theme = &theme.DefaultTheme{}
	}

	session, err := play.New(p.Chart, p.Config.Timing, p.Config.Judge)
	if nil != err {
		return err
	}
	session.OnJudge = p.onJudge
	p.session = session

	if err := p.Renderer.Init(); nil != err {
		return err
	}
	p.layout()
	return nil
}

func (p *Program) layout() {
	rows, cols := p.Renderer.Size()
	mc := cols / 2
	p.hitRow = rows - p.Config.BarRow

	lanes := p.Chart.Difficulty.Lanes()
	p.columns = make(map[uint8]int, len(lanes))
	for i, lane := range lanes {
		p.columns[lane] = mc + p.Config.Spacing*(2*i-(len(lanes)-1))
	}

	p.sideCol = mc - p.Config.Spacing*len(lanes) - 36
	if p.sideCol < 2 {
		p.sideCol = 2
	}
}

func (p *Program) Run() error {
	p.Renderer.RenderLoop(p.Config.FramePeriod, p.Frame)
	if err := p.Renderer.Deinit(); nil != err {
		log.Warn().Err(err).Msg("unable to restore terminal")
	}

	results := p.session.Results()
	p.score = score.Tally(results)
	log.Info().
		Int("rows", p.Chart.Len()).
		Int("judged", len(results)).
		Float64("accuracy", p.score.Accuracy).
		Int("combo", p.score.MaxCombo).
		Dur("peak-lag", p.session.Scheduler.Peak()).
		Msg("finished")

	if p.session.Quit() {
		return nil
	}
	if _, err := p.Scorer.Save(p.Chart, p.session.Inputs(), score.NewSettings(p.Config.Timing, p.Config.Judge)); nil != err {
		return err
	}
	fmt.Printf("%6.2f%%  combo %v  great %v  good %v  miss %v\r\n",
		p.score.Accuracy, p.score.MaxCombo,
		p.score.Counts[judge.Great], p.score.Counts[judge.Good], p.score.Counts[judge.Miss])
	return nil
}

// Frame drains input, steps the simulation and draws the result.
func (p *Program) Frame(delta time.Duration) bool {
	p.session.Frame(delta, p.Source.Drain())
	if nil != p.Player {
		p.Player.Sync(p.session.Engine.Clock().Now())
	}

	p.showMisses()
	p.Render()
	return !p.session.Done()
}

func (p *Program) onJudge(ev input.Event, judged []judge.Candidate) {
	col, ok := p.columns[ev.Lane]
	if !ok {
		return
	}
	if len(judged) == 0 {
		p.Renderer.AddDecoration(p.hitRow, col, "\033[1;30m"+p.Theme.RenderReceptor(ev.Lane)+"\033[0m", 24)
		return
	}
	cfg := p.session.Engine.Config()
	band := cfg.Classify(judged[0])
	p.Renderer.AddDecoration(p.hitRow+1, col-2, p.Theme.RenderJudgement(band), 60)
}

func (p *Program) showMisses() {
	results := p.session.Results()
	for _, r := range results[p.logged:] {
		if r.Band != judge.Miss {
			continue
		}
		for _, lane := range p.Chart.Row(r.Row).Lanes() {
			if col, ok := p.columns[lane]; ok {
				p.Renderer.AddDecoration(p.hitRow+1, col-2, p.Theme.RenderJudgement(judge.Miss), 60)
			}
		}
	}
	p.logged = len(results)
	p.score = score.Tally(results)
}

func (p *Program) Render() {
	engine := p.session.Engine
	alpha := p.session.Alpha()

	// Render the receptors
	for lane, col := range p.columns {
		p.Renderer.Fill(p.hitRow, col, p.Theme.RenderReceptor(lane))
	}

	// Render notes
	for _, sprite := range engine.Visible() {
		row := p.hitRow - int(math.Round(engine.Interpolate(sprite, alpha)))
		if row < 1 || row > p.hitRow {
			continue
		}
		for _, lane := range (game.NoteRow{Columns: sprite.Columns}).Lanes() {
			if col, ok := p.columns[lane]; ok {
				p.Renderer.Fill(row, col, p.Theme.RenderNote(lane))
			}
		}
	}

	sched := p.session.Scheduler
	window := engine.Window()
	p.Renderer.Fill(2, p.sideCol, fmt.Sprintf("        Lag:  %6.2f ms", float64(sched.Lag())/float64(time.Millisecond)))
	p.Renderer.Fill(3, p.sideCol, fmt.Sprintf("       Peak:  %6.2f ms", float64(sched.Peak())/float64(time.Millisecond)))
	p.Renderer.Fill(4, p.sideCol, fmt.Sprintf("        Mix:  %6.2f%%", alpha*100))
	p.Renderer.Fill(5, p.sideCol, fmt.Sprintf("       Time:  %8.3f s", engine.Clock().Seconds()))
	p.Renderer.Fill(6, p.sideCol, fmt.Sprintf("     Window:  %6v", len(window)))
	p.Renderer.Fill(10, p.sideCol, fmt.Sprintf("   Error dt:  %6v", p.score.TotalError))
	p.Renderer.Fill(11, p.sideCol, fmt.Sprintf("      Stdev:  %6.2f ms", p.score.Stdev))
	p.Renderer.Fill(12, p.sideCol, fmt.Sprintf("       Mean:  %6.2f ms", p.score.Mean))
	p.Renderer.Fill(13, p.sideCol, fmt.Sprintf("      Notes:  %6v", p.Chart.NoteCount()))
	p.Renderer.Fill(14, p.sideCol, fmt.Sprintf("      Combo:  %6v", p.score.Combo))
	for i, band := range judge.Bands {
		p.Renderer.FillColor(18+i, p.sideCol, p.Theme.JudgementColor(band), fmt.Sprintf("%11v:  %6v", band, p.score.Counts[band]))
	}
}
