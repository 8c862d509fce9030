package schedule_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/babyfoot-league/server/schedule"
)

func TestRoundRobinGenerator_Generate(t *testing.T) {
	g := schedule.NewRoundRobinGenerator()

	t.Run("four teams produce six pairings with three games each", func(t *testing.T) {
		pairings := g.Generate([]int{10, 20, 30, 40})

		assert.Len(t, pairings, 6)

		gamesPerTeam := make(map[int]int)
		for _, p := range pairings {
			gamesPerTeam[p.HomeTeamID]++
			gamesPerTeam[p.AwayTeamID]++
		}
		for teamID, games := range gamesPerTeam {
			assert.Equalf(t, 3, games, "team %d", teamID)
		}
	})

	t.Run("every unordered pair appears exactly once", func(t *testing.T) {
		teamIDs := []int{1, 2, 3, 4, 5}
		pairings := g.Generate(teamIDs)

		assert.Len(t, pairings, 10)

		seen := make(map[[2]int]bool)
		for _, p := range pairings {
			assert.NotEqual(t, p.HomeTeamID, p.AwayTeamID)
			key := [2]int{p.HomeTeamID, p.AwayTeamID}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			assert.Falsef(t, seen[key], "pair %v appears twice", key)
			seen[key] = true
		}
	})

	t.Run("match numbers form contiguous sequence from one", func(t *testing.T) {
		pairings := g.Generate([]int{7, 8, 9, 11, 12, 13})

		for i, p := range pairings {
			assert.Equal(t, i+1, p.MatchNumber)
		}
	})

	t.Run("pairing count follows the closed formula", func(t *testing.T) {
		for n := 2; n <= 8; n++ {
			teamIDs := make([]int, n)
			for i := range teamIDs {
				teamIDs[i] = i + 1
			}
			pairings := g.Generate(teamIDs)
			assert.Lenf(t, pairings, n*(n-1)/2, "n=%d", n)
		}
	})

	t.Run("deterministic for the same input order", func(t *testing.T) {
		first := g.Generate([]int{5, 3, 8})
		second := g.Generate([]int{5, 3, 8})
		assert.Equal(t, first, second)
	})

	t.Run("degenerate inputs produce no pairings", func(t *testing.T) {
		assert.Empty(t, g.Generate(nil))
		assert.Empty(t, g.Generate([]int{}))
		assert.Empty(t, g.Generate([]int{42}))
	})
}

func TestRoundRobinGenerator_GetName(t *testing.T) {
	g := schedule.NewRoundRobinGenerator()
	assert.Equal(t, "RoundRobin", g.GetName())
}

func ExampleRoundRobinGenerator_Generate() {
	g := schedule.NewRoundRobinGenerator()
	for _, p := range g.Generate([]int{1, 2, 3}) {
		fmt.Printf("match %d: %d vs %d\n", p.MatchNumber, p.HomeTeamID, p.AwayTeamID)
	}
	// Output:
	// match 1: 1 vs 2
	// match 2: 1 vs 3
	// match 3: 2 vs 3
}
