package race

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Leaderboard orders the entries by race progress, best first, and assigns
// their ranks. Ties keep grid order.
func (c *Coordinator) Leaderboard() []*Entry {
	board := append([]*Entry(nil), c.entries...)
	slices.SortStableFunc(board, func(a, b *Entry) int {
		return cmp.Compare(b.Tracker.RaceProgress(), a.Tracker.RaceProgress())
	})
	for i, e := range board {
		e.rank = i + 1
	}
	return board
}

// LeaderboardLines renders the leaderboard for the HUD
func (c *Coordinator) LeaderboardLines() []string {
	return lo.Map(c.Leaderboard(), func(e *Entry, _ int) string {
		return fmt.Sprintf("%d - %s", e.rank, e.Name())
	})
}
