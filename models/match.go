package models

type MatchStatus string

const (
	MatchStatusUpcoming   MatchStatus = "UPCOMING"
	MatchStatusInProgress MatchStatus = "IN_PROGRESS"
	MatchStatusCompleted  MatchStatus = "COMPLETED"
)

// Счёт ограничен правилами кикера: победа при 10 голах.
const (
	MinScore    = 0
	MaxScore    = 10
	WinningGoal = 10
)

// Match - одна встреча двух команд турнира. Матчи создаются только
// массово при генерации расписания; MatchNumber уникален внутри турнира.
type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	HomeTeamID   int         `json:"home_team_id" db:"home_team_id"`
	AwayTeamID   int         `json:"away_team_id" db:"away_team_id"`
	MatchNumber  int         `json:"match_number" db:"match_number"`
	Status       MatchStatus `json:"status" db:"status"`
	HomeScore    *int        `json:"home_score,omitempty" db:"home_score"`
	AwayScore    *int        `json:"away_score,omitempty" db:"away_score"`

	HomeTeam *Team `json:"home_team,omitempty" db:"-"`
	AwayTeam *Team `json:"away_team,omitempty" db:"-"`
}
