// Package wordle implements the five-letter word guessing game. Six
// guesses; fewer guesses score higher.
package wordle

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Querulantenkind/cli-game-collection/internal/core"
	"github.com/Querulantenkind/cli-game-collection/internal/engine"
	"github.com/Querulantenkind/cli-game-collection/internal/registry"
	"github.com/Querulantenkind/cli-game-collection/internal/theme"
)

const (
	wordLen    = 5
	maxGuesses = 6

	minHeight = 20
	minWidth  = 44
)

var words = []string{
	"ARRAY", "BYTES", "CACHE", "CLASS", "DEBUG",
	"ERROR", "FLOAT", "GRAPH", "HELLO", "INDEX",
	"LOGIC", "MERGE", "QUERY", "STACK", "TUPLE",
	"UNION", "VALUE", "WHILE", "YIELD", "ZONES",
	"AGENT", "BLOCK", "CLOUD", "DATUM", "EVENT",
	"FIELD", "GROUP", "HTTPS", "INPUT", "JOINS",
	"LINKS", "MODEL", "NODES", "ORDER", "PARSE",
	"QUEUE", "ROUTE", "SCOPE", "TABLE", "USERS",
	"VALID", "WATCH", "XPATH", "ABORT", "BUILD",
	"CHAIN", "DEFER", "EMOJI", "FRAME", "GRANT",
	"HOOKS", "IMAGE",
}

// letterState is the best knowledge about a letter across all guesses.
type letterState int

const (
	stateUnknown letterState = iota
	stateAbsent
	statePresent
	stateCorrect
)

// Game implements the wordle behavior. Turn-based: Update is a no-op.
type Game struct {
	rng     *rand.Rand
	pal     theme.Theme
	target  string
	guesses []string
	current string
	letters map[rune]letterState
	score   int
	over    bool
	won     bool
}

func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("wordle", func() engine.Behavior {
		return New()
	})
}

func (g *Game) ID() string          { return "wordle" }
func (g *Game) Title() string       { return "Wordle" }
func (g *Game) MinSize() (h, w int) { return minHeight, minWidth }

func (g *Game) Init(cfg engine.Config) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.pal = cfg.Theme

	g.target = words[g.rng.Intn(len(words))]
	g.guesses = nil
	g.current = ""
	g.letters = make(map[rune]letterState)
	g.score = 0
	g.over = false
	g.won = false
	return nil
}

func (g *Game) HandleInput(ev core.KeyEvent) bool {
	switch {
	case ev.Key == core.KeyRune:
		r := ev.Rune
		if r >= 'a' && r <= 'z' {
			r = r - 'a' + 'A'
		}
		if r >= 'A' && r <= 'Z' && len(g.current) < wordLen {
			g.current += string(r)
		}
	case ev.Key == core.KeyBackspace:
		if len(g.current) > 0 {
			g.current = g.current[:len(g.current)-1]
		}
	case ev.Key == core.KeyEnter:
		if len(g.current) == wordLen {
			g.submit()
		}
	}
	return true
}

func (g *Game) submit() {
	guess := g.current
	g.guesses = append(g.guesses, guess)
	g.current = ""

	for i, r := range guess {
		switch {
		case rune(g.target[i]) == r:
			g.letters[r] = stateCorrect
		case strings.ContainsRune(g.target, r):
			if g.letters[r] != stateCorrect {
				g.letters[r] = statePresent
			}
		default:
			if g.letters[r] == stateUnknown {
				g.letters[r] = stateAbsent
			}
		}
	}

	if guess == g.target {
		g.won = true
		g.over = true
		g.score = scoreFor(len(g.guesses))
	} else if len(g.guesses) >= maxGuesses {
		g.over = true
	}
}

// scoreFor rewards early solves: 100 for the first guess, 15 fewer for
// each extra guess, never below 10.
func scoreFor(guessesUsed int) int {
	return max(100-(guessesUsed-1)*15, 10)
}

// Update is a no-op: wordle only advances on input.
func (g *Game) Update(float64) {}

func (g *Game) cellColor(guess string, i int) core.Color {
	r := rune(guess[i])
	switch {
	case rune(g.target[i]) == r:
		return g.pal.Good
	case strings.ContainsRune(g.target, r):
		return g.pal.Accent
	default:
		return g.pal.Muted
	}
}

func (g *Game) Draw(dst *core.Screen) {
	dst.DrawTextCenteredColored(1, "WORDLE", g.pal.Title)
	dst.DrawTextCenteredColored(2, "Guess the 5-letter word", g.pal.Muted)

	gridX := (dst.Width() - wordLen*4) / 2
	gridY := 4
	for row := 0; row < maxGuesses; row++ {
		y := gridY + row*2
		switch {
		case row < len(g.guesses):
			guess := g.guesses[row]
			for i := 0; i < wordLen; i++ {
				label := fmt.Sprintf("[%c]", guess[i])
				dst.DrawTextColored(gridX+i*4, y, label, g.cellColor(guess, i))
			}
		case row == len(g.guesses) && !g.over:
			for i := 0; i < wordLen; i++ {
				ch := '_'
				if i < len(g.current) {
					ch = rune(g.current[i])
				}
				dst.DrawTextColored(gridX+i*4, y, fmt.Sprintf(" %c ", ch), g.pal.Text)
			}
		default:
			for i := 0; i < wordLen; i++ {
				dst.DrawTextColored(gridX+i*4, y, " · ", g.pal.Muted)
			}
		}
	}

	// Keyboard state line.
	y := gridY + maxGuesses*2 + 1
	var b strings.Builder
	for r := 'A'; r <= 'Z'; r++ {
		switch g.letters[r] {
		case stateCorrect, statePresent:
			b.WriteRune(r)
		case stateAbsent:
			b.WriteRune('·')
		default:
			b.WriteRune(lowerRune(r))
		}
	}
	dst.DrawTextCenteredColored(y, b.String(), g.pal.Muted)
}

func lowerRune(r rune) rune { return r - 'A' + 'a' }

func (g *Game) DrawGameOver(dst *core.Screen, isNewHigh bool) {
	g.Draw(dst)
	mid := dst.Height() - 3
	if g.won {
		dst.DrawTextCenteredColored(mid-1, fmt.Sprintf("Solved in %d!", len(g.guesses)), g.pal.Good)
	} else {
		dst.DrawTextCenteredColored(mid-1, fmt.Sprintf("The word was %s", g.target), g.pal.Danger)
	}
	dst.DrawTextCenteredColored(mid, fmt.Sprintf("Final score: %d", g.score), g.pal.Text)
	if isNewHigh {
		dst.DrawTextCenteredColored(mid+1, "New high score!", g.pal.Good)
	}
}

func (g *Game) Status() engine.Status {
	return engine.Status{Score: g.score, Over: g.over, Won: g.won}
}

func (g *Game) Snapshot() map[string]any {
	return map[string]any{
		"score":        g.score,
		"won":          g.won,
		"guesses_used": len(g.guesses),
	}
}

type savedState struct {
	Target  string   `json:"target"`
	Guesses []string `json:"guesses"`
	Current string   `json:"current"`
}

func (g *Game) Serialize() ([]byte, error) {
	return json.Marshal(savedState{
		Target:  g.target,
		Guesses: g.guesses,
		Current: g.current,
	})
}

func (g *Game) Deserialize(payload []byte) error {
	var st savedState
	if err := json.Unmarshal(payload, &st); err != nil {
		return fmt.Errorf("wordle: corrupt save: %w", err)
	}
	if len(st.Target) != wordLen {
		return fmt.Errorf("wordle: save missing target word")
	}
	g.target = st.Target
	g.guesses = st.Guesses
	g.current = st.Current
	g.letters = make(map[rune]letterState)
	g.score = 0
	g.over = false
	g.won = false
	// Rebuild keyboard state from the restored guesses.
	restored := g.guesses
	pending := st.Current
	g.guesses = nil
	for _, guess := range restored {
		g.current = guess
		g.submit()
	}
	g.current = pending
	return nil
}
