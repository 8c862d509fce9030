package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/babyfoot-league/server/models"
	"github.com/babyfoot-league/server/repositories"
)

// DeriveTournamentStatus - чистая функция проекции статуса турнира из
// статусов его матчей:
//   - нет матчей → UPCOMING;
//   - все COMPLETED → COMPLETED;
//   - хотя бы один IN_PROGRESS или COMPLETED → IN_PROGRESS;
//   - иначе (все UPCOMING) → UPCOMING.
//
// Турнир с единственным сыгранным матчем и остальными UPCOMING считается
// IN_PROGRESS: статус означает "турнир идёт", а не "матч на столе".
func DeriveTournamentStatus(matchStatuses []models.MatchStatus) models.TournamentStatus {
	if len(matchStatuses) == 0 {
		return models.TournamentStatusUpcoming
	}

	allCompleted := true
	anyStarted := false
	for _, s := range matchStatuses {
		if s != models.MatchStatusCompleted {
			allCompleted = false
		}
		if s == models.MatchStatusInProgress || s == models.MatchStatusCompleted {
			anyStarted = true
		}
	}

	switch {
	case allCompleted:
		return models.TournamentStatusCompleted
	case anyStarted:
		return models.TournamentStatusInProgress
	default:
		return models.TournamentStatusUpcoming
	}
}

// statusProjector перечитывает матчи турнира и записывает производный статус.
// Запись выполняется только при изменении значения. Идемпотентен: всегда
// пересчитывает от текущего состояния БД, повторный запуск чинит устаревшую
// проекцию после гонки конкурентных обновлений.
type statusProjector struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
}

func (p *statusProjector) refresh(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) error {
	tournament, err := p.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to load tournament %d for status projection: %w", tournamentID, err)
	}

	// Административный CANCELLED не перетирается проекцией.
	if tournament.Status == models.TournamentStatusCancelled {
		return nil
	}

	matches, err := p.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to list matches of tournament %d: %w", tournamentID, err)
	}

	statuses := make([]models.MatchStatus, 0, len(matches))
	for _, m := range matches {
		statuses = append(statuses, m.Status)
	}

	derived := DeriveTournamentStatus(statuses)
	if derived == tournament.Status {
		return nil
	}
	return p.tournamentRepo.UpdateStatus(ctx, exec, tournamentID, derived)
}
