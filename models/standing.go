package models

// StandingRow - строка турнирной таблицы. Не хранится в БД, вычисляется
// по завершённым матчам (см. standings.Calculate).
type StandingRow struct {
	Position       int   `json:"position"`
	Team           *Team `json:"team"`
	Played         int   `json:"played"`
	Wins           int   `json:"wins"`
	Draws          int   `json:"draws"`
	Losses         int   `json:"losses"`
	GoalsFor       int   `json:"goals_for"`
	GoalsAgainst   int   `json:"goals_against"`
	GoalDifference int   `json:"goal_difference"`
	Points         int   `json:"points"`
}
