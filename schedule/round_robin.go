package schedule

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// Generate creates pairings for a single round-robin: each team plays every
// other team exactly once, n*(n-1)/2 pairings total. Match numbers form the
// contiguous sequence 1..n*(n-1)/2. Pure function, no side effects.
func (g *RoundRobinGenerator) Generate(teamIDs []int) []Pairing {
	pairings := make([]Pairing, 0, len(teamIDs)*(len(teamIDs)-1)/2)
	matchNumber := 1

	for i := 0; i < len(teamIDs); i++ {
		for j := i + 1; j < len(teamIDs); j++ {
			pairings = append(pairings, Pairing{
				HomeTeamID:  teamIDs[i],
				AwayTeamID:  teamIDs[j],
				MatchNumber: matchNumber,
			})
			matchNumber++
		}
	}

	return pairings
}
