// Package timing implements the rhythm mini-game: a marker sweeps
// between 0 and 100 and the player presses when it crosses the target
// zone. Perfect hits score more than good hits, misses cost lives.
package timing

import "snackgames/minigames/score"

type State string

const (
	StateReady    State = "ready"
	StatePlaying  State = "playing"
	StateGameOver State = "gameover"
)

type Judgment string

const (
	JudgmentNone    Judgment = ""
	JudgmentStart   Judgment = "start"
	JudgmentPerfect Judgment = "perfect"
	JudgmentGood    Judgment = "good"
	JudgmentMiss    Judgment = "miss"
)

const (
	GoodZoneStart    = 35.0
	GoodZoneEnd      = 65.0
	PerfectZoneStart = 45.0
	PerfectZoneEnd   = 55.0

	InitialSpeed = 2.0
	SpeedStep    = 0.3
	MaxSpeed     = 6.0

	InitialLives = 3

	PerfectBasePoints = 100
	PerfectComboBonus = 10
	GoodBasePoints    = 50
	GoodComboBonus    = 5
)

type Game struct {
	state     State
	position  float64
	direction float64
	speed     float64

	points   int
	combo    int
	maxCombo int
	lives    int

	store    score.Store
	storeKey string
}

func New() *Game {
	g := &Game{}
	g.reset()
	return g
}

// AttachStore enables best-score persistence under the given key.
func (g *Game) AttachStore(s score.Store, key string) {
	g.store = s
	g.storeKey = key
}

func (g *Game) reset() {
	g.state = StateReady
	g.position = 0
	g.direction = 1
	g.speed = InitialSpeed
	g.points = 0
	g.combo = 0
	g.maxCombo = 0
	g.lives = InitialLives
}

// Restart returns to ready with everything reset.
func (g *Game) Restart() { g.reset() }

// Advance moves the marker by the given number of frame units while
// playing, reversing direction at either bound. The UI calls this
// from its animation loop with delta/16ms.
func (g *Game) Advance(frames float64) {
	if g.state != StatePlaying {
		return
	}
	g.position += g.direction * g.speed * frames
	if g.position >= 100 {
		g.position = 100
		g.direction = -1
	} else if g.position <= 0 {
		g.position = 0
		g.direction = 1
	}
}

// Press scores the marker's current position. The first press starts
// the round without scoring; presses after game over are ignored.
func (g *Game) Press() Judgment {
	if g.state == StateReady {
		g.state = StatePlaying
		return JudgmentStart
	}
	if g.state != StatePlaying {
		return JudgmentNone
	}

	switch {
	case g.position >= PerfectZoneStart && g.position <= PerfectZoneEnd:
		g.points += PerfectBasePoints + g.combo*PerfectComboBonus
		g.hit()
		// Speed rises every 5 consecutive perfect-anchored combo hits.
		if g.combo%5 == 0 {
			g.speed += SpeedStep
			if g.speed > MaxSpeed {
				g.speed = MaxSpeed
			}
		}
		return JudgmentPerfect

	case g.position >= GoodZoneStart && g.position <= GoodZoneEnd:
		g.points += GoodBasePoints + g.combo*GoodComboBonus
		g.hit()
		return JudgmentGood

	default:
		g.combo = 0
		g.lives--
		if g.lives <= 0 {
			g.lives = 0
			g.state = StateGameOver
			g.persistBest()
		}
		return JudgmentMiss
	}
}

func (g *Game) hit() {
	g.combo++
	if g.combo > g.maxCombo {
		g.maxCombo = g.combo
	}
}

func (g *Game) persistBest() {
	if g.store == nil {
		return
	}
	best, ok := g.store.Best(g.storeKey)
	if !ok || g.points > best {
		g.store.SetBest(g.storeKey, g.points)
	}
}

func (g *Game) State() State      { return g.state }
func (g *Game) Score() int        { return g.points }
func (g *Game) Combo() int        { return g.combo }
func (g *Game) MaxCombo() int     { return g.maxCombo }
func (g *Game) Lives() int        { return g.lives }
func (g *Game) Position() float64 { return g.position }
func (g *Game) Speed() float64    { return g.speed }

// SetPosition places the marker directly; for driving the game from
// tests or replay input.
func (g *Game) SetPosition(p float64) {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	g.position = p
}

// Best returns the stored best score, if any.
func (g *Game) Best() (int, bool) {
	if g.store == nil {
		return 0, false
	}
	return g.store.Best(g.storeKey)
}
