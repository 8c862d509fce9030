package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/babyfoot-league/server/models"
	"github.com/babyfoot-league/server/repositories"
	"github.com/babyfoot-league/server/schedule"
)

// UpdateMatchInput - частичное обновление матча. nil-поля не трогаются.
type UpdateMatchInput struct {
	HomeScore *int                `json:"home_score"`
	AwayScore *int                `json:"away_score"`
	Status    *models.MatchStatus `json:"status"`
}

type MatchService interface {
	GenerateSchedule(ctx context.Context, tournamentID int) (int, error)
	ResetSchedule(ctx context.Context, tournamentID int) (int, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error)
	GetByID(ctx context.Context, matchID int) (*models.Match, error)
	UpdateMatch(ctx context.Context, matchID int, input UpdateMatchInput) (*models.Match, error)
}

type matchService struct {
	db             *sql.DB
	matchRepo      repositories.MatchRepository
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	generator      schedule.Generator
	projector      *statusProjector
	logger         *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	generator schedule.Generator,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:             db,
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		generator:      generator,
		projector:      &statusProjector{tournamentRepo: tournamentRepo, matchRepo: matchRepo},
		logger:         logger,
	}
}

// GenerateSchedule создаёт все матчи однокругового турнира одной транзакцией.
// Повторная проверка количества матчей выполняется внутри транзакции; вторую
// конкурентную генерацию дополнительно отсекает UNIQUE(tournament_id,
// match_number) - ровно одна из двух вставок завершается успешно.
func (s *matchService) GenerateSchedule(ctx context.Context, tournamentID int) (int, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return 0, ErrTournamentNotFound
		}
		return 0, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to list teams of tournament %d: %w", tournamentID, err)
	}
	if len(teams) < 2 {
		return 0, ErrNotEnoughTeams
	}

	teamIDs := make([]int, len(teams))
	for i, t := range teams {
		teamIDs[i] = t.ID
	}
	pairings := s.generator.Generate(teamIDs)

	matches := make([]*models.Match, len(pairings))
	for i, p := range pairings {
		matches[i] = &models.Match{
			TournamentID: tournamentID,
			HomeTeamID:   p.HomeTeamID,
			AwayTeamID:   p.AwayTeamID,
			MatchNumber:  p.MatchNumber,
			Status:       models.MatchStatusUpcoming,
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	count, err := s.matchRepo.CountByTournament(ctx, tx, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches of tournament %d: %w", tournamentID, err)
	}
	if count > 0 {
		return 0, ErrMatchesAlreadyGenerated
	}

	if err := s.matchRepo.CreateBatch(ctx, tx, matches); err != nil {
		if errors.Is(err, repositories.ErrMatchNumberConflict) {
			return 0, ErrMatchesAlreadyGenerated
		}
		return 0, fmt.Errorf("failed to insert schedule for tournament %d: %w", tournamentID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit schedule for tournament %d: %w", tournamentID, err)
	}

	s.logger.Info("schedule generated",
		slog.Int("tournament_id", tournamentID),
		slog.String("generator", s.generator.GetName()),
		slog.Int("matches_created", len(matches)),
	)
	return len(matches), nil
}

// ResetSchedule удаляет все матчи турнира и принудительно возвращает статус
// UPCOMING: матчей не осталось, формула проекции даёт тот же результат.
func (s *matchService) ResetSchedule(ctx context.Context, tournamentID int) (int, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return 0, ErrTournamentNotFound
		}
		return 0, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleted, err := s.matchRepo.DeleteByTournament(ctx, tx, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete matches of tournament %d: %w", tournamentID, err)
	}

	if tournament.Status != models.TournamentStatusUpcoming {
		if err := s.tournamentRepo.UpdateStatus(ctx, tx, tournamentID, models.TournamentStatusUpcoming); err != nil {
			return 0, fmt.Errorf("failed to reset status of tournament %d: %w", tournamentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit schedule reset for tournament %d: %w", tournamentID, err)
	}

	s.logger.Info("schedule reset",
		slog.Int("tournament_id", tournamentID),
		slog.Int("matches_deleted", deleted),
	)
	return deleted, nil
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return s.matchRepo.ListByTournament(ctx, tournamentID)
}

func (s *matchService) GetByID(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	s.attachTeams(ctx, match)
	return match, nil
}

// UpdateMatch применяет частичное обновление счёта/статуса. Валидация идёт
// по "эффективным" значениям - входное значение, если оно передано, иначе
// сохранённое: частичное обновление одного статуса при уже записанном
// победном счёте проходит, а попытка завершить матч без победителя - нет.
func (s *matchService) UpdateMatch(ctx context.Context, matchID int, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}

	// Границы счёта проверяются до проверки статуса.
	for _, score := range []*int{input.HomeScore, input.AwayScore} {
		if score != nil && (*score < models.MinScore || *score > models.MaxScore) {
			return nil, ErrInvalidScore
		}
	}

	status := match.Status
	if input.Status != nil {
		switch *input.Status {
		case models.MatchStatusUpcoming, models.MatchStatusInProgress, models.MatchStatusCompleted:
			status = *input.Status
		default:
			return nil, ErrInvalidMatchStatus
		}
	}

	homeScore := effectiveScore(input.HomeScore, match.HomeScore)
	awayScore := effectiveScore(input.AwayScore, match.AwayScore)

	if status == models.MatchStatusCompleted {
		if scoreValue(homeScore) < models.WinningGoal && scoreValue(awayScore) < models.WinningGoal {
			return nil, ErrNoWinner
		}
	}

	match.Status = status
	match.HomeScore = homeScore
	match.AwayScore = awayScore

	if err := s.matchRepo.Update(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match %d: %w", matchID, err)
	}

	if err := s.projector.refresh(ctx, nil, match.TournamentID); err != nil {
		return nil, fmt.Errorf("failed to refresh status of tournament %d: %w", match.TournamentID, err)
	}

	s.attachTeams(ctx, match)
	return match, nil
}

// attachTeams подгружает команды матча для ответа; ошибки загрузки не
// фатальны, матч возвращается без вложенных сущностей.
func (s *matchService) attachTeams(ctx context.Context, match *models.Match) {
	home, err := s.teamRepo.GetByID(ctx, match.HomeTeamID)
	if err == nil {
		match.HomeTeam = home
	}
	away, err := s.teamRepo.GetByID(ctx, match.AwayTeamID)
	if err == nil {
		match.AwayTeam = away
	}
}

func effectiveScore(incoming, stored *int) *int {
	if incoming != nil {
		return incoming
	}
	return stored
}

func scoreValue(score *int) int {
	if score == nil {
		return 0
	}
	return *score
}
