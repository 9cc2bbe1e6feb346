package draw

import (
	"math/rand"
	"time"

	"github.com/jaganpon/auction/go/internal/models"
	"github.com/jaganpon/auction/go/internal/roster"
)

// Selector decides which unassigned player is currently up for bidding.
// It keeps two orderings: the original order captured at construction,
// which Reset restores, and the working order that Shuffle permutes. A
// type filter re-scopes the working view without touching either snapshot.
type Selector struct {
	original []models.Player
	working  []models.Player
	filter   string
	index    int
	rng      *rand.Rand
}

// NewSelector captures the given pool as the original draw order. The pool
// should contain only unassigned players.
func NewSelector(pool []models.Player) *Selector {
	return newSelector(pool, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewSeededSelector is NewSelector with a deterministic random source.
func NewSeededSelector(pool []models.Player, seed int64) *Selector {
	return newSelector(pool, rand.New(rand.NewSource(seed)))
}

func newSelector(pool []models.Player, rng *rand.Rand) *Selector {
	s := &Selector{
		original: make([]models.Player, len(pool)),
		working:  make([]models.Player, len(pool)),
		filter:   roster.TypeAll,
		rng:      rng,
	}
	copy(s.original, pool)
	copy(s.working, pool)
	return s
}

// view returns the working order scoped by the active type filter.
func (s *Selector) view() []models.Player {
	return roster.ByType(s.working, s.filter)
}

// Current returns the player at the pointer, or false if the filtered pool
// is exhausted.
func (s *Selector) Current() (models.Player, bool) {
	v := s.view()
	if s.index < 0 || s.index >= len(v) {
		return models.Player{}, false
	}
	return v[s.index], true
}

// Advance moves the pointer to the next player in the filtered sequence.
// It returns false once the pointer passes the end, which callers treat as
// pool exhaustion rather than an error.
func (s *Selector) Advance() (models.Player, bool) {
	v := s.view()
	if s.index+1 >= len(v) {
		s.index = len(v)
		return models.Player{}, false
	}
	s.index++
	return v[s.index], true
}

// DrawRandom repositions the pointer on a player chosen uniformly at random
// from the filtered pool. It returns false when the pool is empty.
func (s *Selector) DrawRandom() (models.Player, bool) {
	v := s.view()
	if len(v) == 0 {
		return models.Player{}, false
	}
	s.index = s.rng.Intn(len(v))
	return v[s.index], true
}

// Shuffle permutes the working order with a Fisher-Yates shuffle and resets
// the pointer to the front. The original snapshot is untouched.
func (s *Selector) Shuffle() {
	for i := len(s.working) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		s.working[i], s.working[j] = s.working[j], s.working[i]
	}
	s.index = 0
}

// Reset restores the originally captured order, clears the type filter and
// resets the pointer.
func (s *Selector) Reset() {
	s.working = make([]models.Player, len(s.original))
	copy(s.working, s.original)
	s.filter = roster.TypeAll
	s.index = 0
}

// SetFilter re-scopes the sequence to one player type ("all" clears the
// filter) and resets the pointer.
func (s *Selector) SetFilter(playerType string) {
	s.filter = playerType
	s.index = 0
}

// Filter returns the active type filter.
func (s *Selector) Filter() string {
	return s.filter
}

// Remove drops a sold player from both the working order and the original
// snapshot, so Reset never resurrects an assigned player. The pointer is
// clamped to the new bounds.
func (s *Selector) Remove(empID string) {
	s.working = removePlayer(s.working, empID)
	s.original = removePlayer(s.original, empID)

	if n := len(s.view()); n > 0 && s.index >= n {
		s.index = n - 1
	}
}

// Remaining returns how many players are left in the filtered pool.
func (s *Selector) Remaining() int {
	return len(s.view())
}

// Exhausted reports whether no players remain in the working pool at all,
// ignoring the type filter.
func (s *Selector) Exhausted() bool {
	return len(s.working) == 0
}

// Order returns a copy of the current filtered sequence.
func (s *Selector) Order() []models.Player {
	v := s.view()
	out := make([]models.Player, len(v))
	copy(out, v)
	return out
}

func removePlayer(players []models.Player, empID string) []models.Player {
	out := players[:0]
	for _, p := range players {
		if p.EmpID != empID {
			out = append(out, p)
		}
	}
	return out
}
