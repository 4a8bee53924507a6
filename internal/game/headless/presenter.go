package headless

import (
	"sync"
	"time"

	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/schedule"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/game/round"
)

var _ round.Presenter = (*Presenter)(nil)

// Presenter logs intros and keeps the visual state a renderer would show.
type Presenter struct {
	sched         *schedule.Scheduler
	introDuration time.Duration
	logger        log.Log

	mu         sync.RWMutex
	alpha      map[roster.ParticipantID]float64
	timerEnd   time.Duration
	timerShown bool
	intros     int
}

func NewPresenter(sched *schedule.Scheduler, introDuration time.Duration, logger log.Log) *Presenter {
	return &Presenter{
		sched:         sched,
		introDuration: introDuration,
		logger:        logger,
		alpha:         make(map[roster.ParticipantID]float64),
	}
}

func (p *Presenter) ShowIntro(title string, icons []round.Icon, done func()) {
	names := make([]string, len(icons))
	for i, icon := range icons {
		names[i] = icon.String()
	}
	p.mu.Lock()
	p.intros++
	p.mu.Unlock()
	p.logger.Info(title, log.Strings("icons", names))

	if p.introDuration <= 0 {
		done()
		return
	}
	p.sched.After(p.introDuration, done)
}

func (p *Presenter) SetAlpha(id roster.ParticipantID, alpha float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alpha[id] = alpha
}

// Alpha returns the last alpha set for id; participants never touched are
// fully visible.
func (p *Presenter) Alpha(id roster.ParticipantID) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if a, ok := p.alpha[id]; ok {
		return a
	}
	return 1
}

func (p *Presenter) ShowTimer(total time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timerEnd = p.sched.Now() + total
	p.timerShown = true
}

func (p *Presenter) HideTimer() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timerShown = false
}

// TimerRemaining returns the HUD countdown and whether it is shown.
func (p *Presenter) TimerRemaining() (time.Duration, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.timerShown {
		return 0, false
	}
	return max(p.timerEnd-p.sched.Now(), 0), true
}

// Intros returns how many intros were shown.
func (p *Presenter) Intros() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.intros
}
