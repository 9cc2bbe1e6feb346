package draw

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/jaganpon/auction/go/internal/models"
)

func poolOf(empIDs ...string) []models.Player {
	players := make([]models.Player, len(empIDs))
	for i, id := range empIDs {
		players[i] = models.Player{EmpID: id, Name: "Player " + id, Type: models.PlayerTypeBatsman}
	}
	return players
}

func empIDs(players []models.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.EmpID
	}
	return out
}

func TestSelector_AdvanceUntilExhausted(t *testing.T) {
	s := NewSeededSelector(poolOf("E1", "E2", "E3"), 1)

	p, ok := s.Current()
	assert.True(t, ok)
	check.Equal(t, "E1", p.EmpID)

	p, ok = s.Advance()
	assert.True(t, ok)
	check.Equal(t, "E2", p.EmpID)

	p, ok = s.Advance()
	assert.True(t, ok)
	check.Equal(t, "E3", p.EmpID)

	_, ok = s.Advance()
	check.False(t, ok)
	_, ok = s.Current()
	check.False(t, ok)
}

func TestSelector_ShufflePreservesSet(t *testing.T) {
	ids := []string{"E1", "E2", "E3", "E4", "E5", "E6"}
	s := NewSeededSelector(poolOf(ids...), 42)

	s.Shuffle()

	shuffled := empIDs(s.Order())
	check.Equal(t, len(ids), len(shuffled))
	seen := make(map[string]bool)
	for _, id := range shuffled {
		seen[id] = true
	}
	for _, id := range ids {
		check.True(t, seen[id])
	}

	p, ok := s.Current()
	assert.True(t, ok)
	check.Equal(t, shuffled[0], p.EmpID)
}

func TestSelector_ShuffleRoughlyUniform(t *testing.T) {
	// Over many shuffles each player should land in position 0 close to
	// 1/n of the time.
	ids := []string{"E1", "E2", "E3", "E4", "E5"}
	s := NewSeededSelector(poolOf(ids...), 7)

	const trials = 20000
	firsts := make(map[string]int)
	for i := 0; i < trials; i++ {
		s.Shuffle()
		p, ok := s.Current()
		assert.True(t, ok)
		firsts[p.EmpID]++
	}

	expected := trials / len(ids)
	for _, id := range ids {
		count := firsts[id]
		check.True(t, count > expected*8/10)
		check.True(t, count < expected*12/10)
	}
}

func TestSelector_ResetRestoresOriginalOrder(t *testing.T) {
	original := poolOf("E1", "E2", "E3", "E4")
	s := NewSeededSelector(original, 99)

	s.Shuffle()
	s.Shuffle()
	s.SetFilter(string(models.PlayerTypeBatsman))
	s.Shuffle()

	s.Reset()

	check.Equal(t, "", cmp.Diff(empIDs(original), empIDs(s.Order())))
	check.Equal(t, "all", s.Filter())
	p, ok := s.Current()
	assert.True(t, ok)
	check.Equal(t, "E1", p.EmpID)
}

func TestSelector_ResetDoesNotResurrectSoldPlayers(t *testing.T) {
	s := NewSeededSelector(poolOf("E1", "E2", "E3"), 5)

	s.Shuffle()
	s.Remove("E2")
	s.Reset()

	check.Equal(t, "", cmp.Diff([]string{"E1", "E3"}, empIDs(s.Order())))
}

func TestSelector_FilterDoesNotMutateSnapshot(t *testing.T) {
	players := []models.Player{
		{EmpID: "E1", Type: models.PlayerTypeBatsman},
		{EmpID: "E2", Type: models.PlayerTypeBowler},
		{EmpID: "E3", Type: models.PlayerTypeBatsman},
	}
	s := NewSeededSelector(players, 3)

	s.SetFilter("bowler")
	check.Equal(t, "", cmp.Diff([]string{"E2"}, empIDs(s.Order())))

	s.SetFilter("all")
	check.Equal(t, "", cmp.Diff([]string{"E1", "E2", "E3"}, empIDs(s.Order())))
}

func TestSelector_RemoveClampsPointer(t *testing.T) {
	s := NewSeededSelector(poolOf("E1", "E2", "E3"), 11)

	// Move the pointer to the last player, then sell it.
	s.Advance()
	s.Advance()
	s.Remove("E3")

	p, ok := s.Current()
	assert.True(t, ok)
	check.Equal(t, "E2", p.EmpID)
	check.Equal(t, 2, s.Remaining())
}

func TestSelector_RemoveLastPlayerExhaustsPool(t *testing.T) {
	s := NewSeededSelector(poolOf("E1"), 2)

	s.Remove("E1")

	_, ok := s.Current()
	check.False(t, ok)
	check.True(t, s.Exhausted())
	check.Equal(t, 0, s.Remaining())
}

func TestSelector_DrawRandomCoversPool(t *testing.T) {
	s := NewSeededSelector(poolOf("E1", "E2", "E3"), 13)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		p, ok := s.DrawRandom()
		assert.True(t, ok)
		seen[p.EmpID] = true
	}
	check.Equal(t, 3, len(seen))
}

func TestSelector_DrawRandomEmptyPool(t *testing.T) {
	s := NewSeededSelector(nil, 17)

	_, ok := s.DrawRandom()
	check.False(t, ok)
}
