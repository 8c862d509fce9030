package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/babyfoot-league/server/models"
	"github.com/babyfoot-league/server/repositories"
	"github.com/babyfoot-league/server/storage"
)

type CreateTournamentInput struct {
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
}

type UpdateTournamentInput struct {
	Name        *string                  `json:"name"`
	Description *string                  `json:"description"`
	Date        *time.Time               `json:"date"`
	Status      *models.TournamentStatus `json:"status"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, creatorID int, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	ListAvailable(ctx context.Context) ([]models.Tournament, error)
	UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id int) error
	UploadBanner(ctx context.Context, id int, contentType string, file io.Reader) (*models.Tournament, error)
}

type tournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	memberRepo     repositories.TeamMemberRepository
	matchRepo      repositories.MatchRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	memberRepo repositories.TeamMemberRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		memberRepo:     memberRepo,
		matchRepo:      matchRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

func isValidTournamentStatus(status models.TournamentStatus) bool {
	switch status {
	case models.TournamentStatusUpcoming,
		models.TournamentStatusInProgress,
		models.TournamentStatusCompleted,
		models.TournamentStatusCancelled:
		return true
	}
	return false
}

func (s *tournamentService) CreateTournament(ctx context.Context, creatorID int, input CreateTournamentInput) (*models.Tournament, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTournamentNameRequired
	}

	tournament := &models.Tournament{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Date:        input.Date,
		Status:      models.TournamentStatusUpcoming,
		CreatedByID: creatorID,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.Info("tournament created",
		slog.Int("tournament_id", tournament.ID),
		slog.Int("created_by", creatorID),
	)
	return tournament, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	s.attachBannerURL(tournament)
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range tournaments {
		s.attachBannerURL(&tournaments[i])
	}
	return tournaments, nil
}

// ListAvailable возвращает турниры, открытые для регистрации.
func (s *tournamentService) ListAvailable(ctx context.Context) ([]models.Tournament, error) {
	status := models.TournamentStatusUpcoming
	return s.ListTournaments(ctx, repositories.ListTournamentsFilter{Status: &status})
}

// UpdateTournament - редактирование деталей; здесь же разрешён явный
// административный override статуса (например, CANCELLED или откат проекции).
func (s *tournamentService) UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrTournamentNameRequired
		}
		tournament.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		tournament.Description = input.Description
	}
	if input.Date != nil {
		tournament.Date = *input.Date
	}
	if input.Status != nil {
		if !isValidTournamentStatus(*input.Status) {
			return nil, ErrTournamentInvalidStatus
		}
		tournament.Status = *input.Status
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
	}
	return tournament, nil
}

// DeleteTournament удаляет турнир со всем содержимым. Реляционный каскад
// выполняется явно, упорядоченно, одной транзакцией: матчи, затем состав
// команд, затем команды, затем сам турнир.
func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.matchRepo.DeleteByTournament(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete matches of tournament %d: %w", id, err)
	}
	if _, err := s.memberRepo.DeleteByTournament(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete team members of tournament %d: %w", id, err)
	}
	if _, err := s.teamRepo.DeleteByTournament(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete teams of tournament %d: %w", id, err)
	}
	if err := s.tournamentRepo.Delete(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deletion of tournament %d: %w", id, err)
	}

	if tournament.BannerKey != nil {
		if err := s.uploader.Delete(ctx, *tournament.BannerKey); err != nil {
			// Осиротевший объект в хранилище не критичен; турнира уже нет.
			s.logger.Warn("failed to delete tournament banner",
				slog.Int("tournament_id", id),
				slog.Any("error", err),
			)
		}
	}

	s.logger.Info("tournament deleted", slog.Int("tournament_id", id))
	return nil
}

func (s *tournamentService) UploadBanner(ctx context.Context, id int, contentType string, file io.Reader) (*models.Tournament, error) {
	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tournaments/%d/banner-%d", id, time.Now().UnixNano())
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload banner for tournament %d: %w", id, err)
	}

	oldKey := tournament.BannerKey
	if err := s.tournamentRepo.UpdateBannerKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store banner key for tournament %d: %w", id, err)
	}

	if oldKey != nil && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete previous banner",
				slog.Int("tournament_id", id),
				slog.Any("error", err),
			)
		}
	}

	tournament.BannerKey = &result.Key
	s.attachBannerURL(tournament)
	return tournament, nil
}

func (s *tournamentService) attachBannerURL(t *models.Tournament) {
	if t.BannerKey == nil || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(*t.BannerKey)
	if url != "" {
		t.BannerURL = &url
	}
}
