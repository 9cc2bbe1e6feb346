package roster

import (
	"sort"
	"strings"

	"github.com/jaganpon/auction/go/internal/models"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// TypeAll is the identity filter accepted by ByType.
const TypeAll = "all"

// Unassigned returns the players still available for auction, preserving
// input order.
func Unassigned(players []models.Player) []models.Player {
	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		if !p.IsAssigned {
			out = append(out, p)
		}
	}
	return out
}

// Assigned returns the players already sold, preserving input order.
func Assigned(players []models.Player) []models.Player {
	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		if p.IsAssigned {
			out = append(out, p)
		}
	}
	return out
}

// ByType filters players by type, matching case-insensitively. The "all"
// filter returns the input unchanged.
func ByType(players []models.Player, playerType string) []models.Player {
	if strings.EqualFold(playerType, TypeAll) {
		return players
	}
	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		if strings.EqualFold(string(p.Type), playerType) {
			out = append(out, p)
		}
	}
	return out
}

// CountByType returns how many of the given players carry each type,
// keyed by the canonical type strings plus "all".
func CountByType(players []models.Player) map[string]int {
	counts := map[string]int{TypeAll: len(players)}
	for _, t := range models.PlayerTypes {
		counts[string(t)] = 0
	}
	for _, p := range players {
		if t, ok := models.ParsePlayerType(string(p.Type)); ok {
			counts[string(t)]++
		}
	}
	return counts
}

// SearchByName matches players whose name fuzzily contains the query,
// best matches first. An empty query returns all players in input order.
func SearchByName(players []models.Player, query string) []models.Player {
	if strings.TrimSpace(query) == "" {
		return players
	}
	q := strings.ToLower(query)
	type scored struct {
		player models.Player
		rank   int
	}
	matches := make([]scored, 0, len(players))
	for _, p := range players {
		name := strings.ToLower(p.Name)
		rank := fuzzy.RankMatch(q, name)
		if rank < 0 {
			continue
		}
		matches = append(matches, scored{player: p, rank: rank})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})
	out := make([]models.Player, len(matches))
	for i, m := range matches {
		out[i] = m.player
	}
	return out
}
