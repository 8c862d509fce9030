package standings

import (
	"sort"

	"github.com/babyfoot-league/server/models"
)

// Очки за исход матча.
const (
	pointsWin  = 3
	pointsDraw = 1
)

// tieKey - четвёрка показателей, по которым команды считаются равными.
// Команды с одинаковым tieKey делят одну позицию в таблице.
type tieKey struct {
	points         int
	goalDifference int
	goalsFor       int
	goalsAgainst   int
}

func rowKey(r *models.StandingRow) tieKey {
	return tieKey{
		points:         r.Points,
		goalDifference: r.GoalDifference,
		goalsFor:       r.GoalsFor,
		goalsAgainst:   r.GoalsAgainst,
	}
}

// Calculate строит турнирную таблицу по завершённым матчам. Учитываются
// только матчи со статусом COMPLETED и заполненными счетами; каждый матч
// засчитывается обеим командам ровно один раз, голы относятся по сторонам.
// Результат детерминирован: одинаковый набор матчей даёт байт-в-байт
// одинаковую таблицу.
func Calculate(teams []*models.Team, matches []*models.Match) []*models.StandingRow {
	rowsByTeam := make(map[int]*models.StandingRow, len(teams))
	rows := make([]*models.StandingRow, 0, len(teams))

	for _, team := range teams {
		row := &models.StandingRow{Team: team}
		rowsByTeam[team.ID] = row
		rows = append(rows, row)
	}

	for _, match := range matches {
		if match.Status != models.MatchStatusCompleted {
			continue
		}
		if match.HomeScore == nil || match.AwayScore == nil {
			continue
		}
		applyResult(rowsByTeam[match.HomeTeamID], *match.HomeScore, *match.AwayScore)
		applyResult(rowsByTeam[match.AwayTeamID], *match.AwayScore, *match.HomeScore)
	}

	for _, row := range rows {
		row.Played = row.Wins + row.Draws + row.Losses
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		row.Points = row.Wins*pointsWin + row.Draws*pointsDraw
	}

	sortRows(rows)
	assignPositions(rows)

	return rows
}

func applyResult(row *models.StandingRow, scored, conceded int) {
	if row == nil {
		// Матч ссылается на команду вне переданного списка; пропускаем.
		return
	}
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		row.Wins++
	case scored < conceded:
		row.Losses++
	default:
		row.Draws++
	}
}

// Порядок сортировки: очки, разница голов, забитые - по убыванию;
// пропущенные - по возрастанию; имя команды - финальный детерминирующий
// тай-брейк.
func sortRows(rows []*models.StandingRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		if a.GoalsAgainst != b.GoalsAgainst {
			return a.GoalsAgainst < b.GoalsAgainst
		}
		return a.Team.Name < b.Team.Name
	})
}

// assignPositions нумерует позиции с учётом ничьих: команды с равной
// четвёркой показателей делят позицию, следующая отличная команда получает
// свой 1-based порядковый номер (1,2,2,4 - не 1,2,2,3).
func assignPositions(rows []*models.StandingRow) {
	var prev tieKey
	for i, row := range rows {
		key := rowKey(row)
		if i == 0 || key != prev {
			row.Position = i + 1
		} else {
			row.Position = rows[i-1].Position
		}
		prev = key
	}
}
