// Package memory implements the card-matching mini-game: flip cards
// two at a time and find every pair in as few moves as possible.
package memory

import (
	"math/rand"
	"time"

	"snackgames/minigames/score"
)

type State string

const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
	StateWon     State = "won"
)

// DefaultSymbols gives the standard 8-pair deck.
var DefaultSymbols = []string{"🍎", "🍊", "🍋", "🍇", "🍓", "🍑", "🍒", "🥝"}

type Card struct {
	ID      int
	Symbol  string
	FaceUp  bool
	Matched bool
}

// Game holds one round. The flip-delay the UI shows between revealing
// a mismatched pair and turning it back is modeled as a pending
// resolution: after the second flip the pair stays face-up until
// Resolve is called, and no third card can be flipped in between.
type Game struct {
	state   State
	cards   []Card
	pending []int
	moves   int

	startedAt time.Time
	elapsed   time.Duration
	now       func() time.Time

	rng      *rand.Rand
	store    score.Store
	storeKey string
}

// New builds a shuffled deck of len(symbols) pairs.
func New(symbols []string) *Game {
	return NewWithRand(symbols, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand is New with a caller-supplied source, for deterministic
// decks.
func NewWithRand(symbols []string, rng *rand.Rand) *Game {
	g := &Game{rng: rng, now: time.Now}
	g.deal(symbols)
	return g
}

// AttachStore enables best-score persistence under the given key.
func (g *Game) AttachStore(s score.Store, key string) {
	g.store = s
	g.storeKey = key
}

func (g *Game) deal(symbols []string) {
	deck := make([]string, 0, len(symbols)*2)
	deck = append(deck, symbols...)
	deck = append(deck, symbols...)
	g.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	g.cards = make([]Card, len(deck))
	for i, symbol := range deck {
		g.cards[i] = Card{ID: i, Symbol: symbol}
	}
	g.pending = nil
	g.moves = 0
	g.elapsed = 0
	g.state = StateIdle
}

// Restart reshuffles the same symbols and returns to idle.
func (g *Game) Restart() {
	symbols := make([]string, 0, len(g.cards)/2)
	seen := map[string]int{}
	for _, c := range g.cards {
		if seen[c.Symbol] == 0 {
			symbols = append(symbols, c.Symbol)
		}
		seen[c.Symbol]++
	}
	g.deal(symbols)
}

// Flip reveals a card. It reports false for no-ops: the card is
// already matched or face-up, two cards are awaiting resolution, or
// the round is won. The first flip starts the round and the timer;
// the second flip of a pair counts one move.
func (g *Game) Flip(id int) bool {
	if g.state == StateWon {
		return false
	}
	if len(g.pending) >= 2 {
		return false
	}
	if id < 0 || id >= len(g.cards) {
		return false
	}
	card := &g.cards[id]
	if card.FaceUp || card.Matched {
		return false
	}

	if g.state == StateIdle {
		g.state = StatePlaying
		g.startedAt = g.now()
	}

	card.FaceUp = true
	g.pending = append(g.pending, id)
	if len(g.pending) == 2 {
		g.moves++
	}
	return true
}

// PendingResolution reports whether two cards are face-up awaiting
// Resolve.
func (g *Game) PendingResolution() bool {
	return len(g.pending) == 2
}

// Resolve settles the revealed pair: a match is marked permanently
// matched, a mismatch turns both face-down. Winning the round stops
// the timer and persists the best (lowest) move count.
func (g *Game) Resolve() {
	if len(g.pending) != 2 {
		return
	}
	first := &g.cards[g.pending[0]]
	second := &g.cards[g.pending[1]]

	if first.Symbol == second.Symbol {
		first.Matched = true
		second.Matched = true
	} else {
		first.FaceUp = false
		second.FaceUp = false
	}
	g.pending = nil

	for _, c := range g.cards {
		if !c.Matched {
			return
		}
	}

	g.elapsed = g.now().Sub(g.startedAt)
	g.state = StateWon

	if g.store != nil {
		best, ok := g.store.Best(g.storeKey)
		if !ok || g.moves < best {
			g.store.SetBest(g.storeKey, g.moves)
		}
	}
}

func (g *Game) State() State { return g.state }

func (g *Game) Moves() int { return g.moves }

// Cards returns a snapshot of the deck.
func (g *Game) Cards() []Card {
	out := make([]Card, len(g.cards))
	copy(out, g.cards)
	return out
}

// Elapsed is the running round time; it freezes on won and is zero
// while idle.
func (g *Game) Elapsed() time.Duration {
	switch g.state {
	case StatePlaying:
		return g.now().Sub(g.startedAt)
	case StateWon:
		return g.elapsed
	default:
		return 0
	}
}

// Best returns the stored best move count, if any.
func (g *Game) Best() (int, bool) {
	if g.store == nil {
		return 0, false
	}
	return g.store.Best(g.storeKey)
}
