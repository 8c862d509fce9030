package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/babyfoot-league/server/models"
	"github.com/babyfoot-league/server/repositories"
)

type CreateAdminTeamInput struct {
	Name        string `json:"name"`
	Player1Name string `json:"player1_name"`
	Player2Name string `json:"player2_name"`
}

type UpdateTeamInput struct {
	Name        *string `json:"name"`
	Player1Name *string `json:"player1_name"`
	Player2Name *string `json:"player2_name"`
}

type RegisterTeamInput struct {
	TeamName     string `json:"team_name"`
	PartnerEmail string `json:"partner_email"`
}

type TeamService interface {
	AddAdminTeam(ctx context.Context, tournamentID int, input CreateAdminTeamInput) (*models.Team, error)
	RegisterTeam(ctx context.Context, tournamentID, userID int, input RegisterTeamInput) (*models.Team, error)
	LeaveTeam(ctx context.Context, teamID, userID int) error
	UpdateTeam(ctx context.Context, teamID int, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, teamID int) error
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error)
}

type teamService struct {
	db             *sql.DB
	teamRepo       repositories.TeamRepository
	memberRepo     repositories.TeamMemberRepository
	matchRepo      repositories.MatchRepository
	tournamentRepo repositories.TournamentRepository
	userRepo       repositories.UserRepository
	projector      *statusProjector
	logger         *slog.Logger
}

func NewTeamService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	memberRepo repositories.TeamMemberRepository,
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	userRepo repositories.UserRepository,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		db:             db,
		teamRepo:       teamRepo,
		memberRepo:     memberRepo,
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		userRepo:       userRepo,
		projector:      &statusProjector{tournamentRepo: tournamentRepo, matchRepo: matchRepo},
		logger:         logger,
	}
}

// ensureScheduleUnlocked реализует блокировку состава: любая мутация
// команд/участников отклоняется, как только у турнира есть хотя бы один матч.
func (s *teamService) ensureScheduleUnlocked(ctx context.Context, tournamentID int) error {
	count, err := s.matchRepo.CountByTournament(ctx, nil, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to count matches of tournament %d: %w", tournamentID, err)
	}
	if count > 0 {
		return ErrScheduleLocked
	}
	return nil
}

func (s *teamService) getTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}
	return tournament, nil
}

// AddAdminTeam создаёт команду с введёнными вручную именами игроков.
func (s *teamService) AddAdminTeam(ctx context.Context, tournamentID int, input CreateAdminTeamInput) (*models.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTeamNameRequired
	}

	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	if err := s.ensureScheduleUnlocked(ctx, tournamentID); err != nil {
		return nil, err
	}

	team := &models.Team{
		TournamentID: tournamentID,
		Name:         strings.TrimSpace(input.Name),
		Player1Name:  &input.Player1Name,
		Player2Name:  &input.Player2Name,
	}
	if err := s.teamRepo.Create(ctx, nil, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

// RegisterTeam регистрирует пару "текущий пользователь + партнёр по email".
// Команда и обе записи состава создаются одной транзакцией; гонку двух
// конкурентных регистраций с общим участником разрешает ограничение
// UNIQUE(tournament_id, user_id) в БД, а не только предпроверки здесь.
func (s *teamService) RegisterTeam(ctx context.Context, tournamentID, userID int, input RegisterTeamInput) (*models.Team, error) {
	if strings.TrimSpace(input.TeamName) == "" {
		return nil, ErrTeamNameRequired
	}

	tournament, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.TournamentStatusUpcoming {
		return nil, ErrRegistrationNotOpen
	}
	if err := s.ensureScheduleUnlocked(ctx, tournamentID); err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.FindByUserAndTournament(ctx, userID, tournamentID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, repositories.ErrTeamMemberNotFound) {
		return nil, fmt.Errorf("failed to check registration of user %d: %w", userID, err)
	}

	partner, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(input.PartnerEmail))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, fmt.Errorf("failed to resolve partner by email: %w", err)
	}
	if partner.ID == userID {
		return nil, ErrSelfPartner
	}

	if _, err := s.memberRepo.FindByUserAndTournament(ctx, partner.ID, tournamentID); err == nil {
		return nil, ErrPartnerAlreadyRegistered
	} else if !errors.Is(err, repositories.ErrTeamMemberNotFound) {
		return nil, fmt.Errorf("failed to check registration of partner %d: %w", partner.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	team := &models.Team{
		TournamentID: tournamentID,
		Name:         strings.TrimSpace(input.TeamName),
	}
	if err := s.teamRepo.Create(ctx, tx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	for _, memberUserID := range []int{userID, partner.ID} {
		member := &models.TeamMember{
			TeamID:       team.ID,
			TournamentID: tournamentID,
			UserID:       memberUserID,
		}
		if err := s.memberRepo.Create(ctx, tx, member); err != nil {
			if errors.Is(err, repositories.ErrMembershipConflict) {
				if memberUserID == partner.ID {
					return nil, ErrPartnerAlreadyRegistered
				}
				return nil, ErrAlreadyRegistered
			}
			return nil, fmt.Errorf("failed to add member %d to team %d: %w", memberUserID, team.ID, err)
		}
		team.Members = append(team.Members, *member)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit team registration: %w", err)
	}

	s.logger.Info("team registered",
		slog.Int("tournament_id", tournamentID),
		slog.Int("team_id", team.ID),
		slog.Int("user_id", userID),
		slog.Int("partner_id", partner.ID),
	)
	return team, nil
}

// LeaveTeam выводит пользователя из команды. Команда без участников не имеет
// смысла, поэтому записи состава и сама команда удаляются вместе, одной
// транзакцией.
func (s *teamService) LeaveTeam(ctx context.Context, teamID, userID int) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to load team %d: %w", teamID, err)
	}

	if err := s.ensureScheduleUnlocked(ctx, team.TournamentID); err != nil {
		return err
	}

	membership, err := s.memberRepo.FindByUserAndTournament(ctx, userID, team.TournamentID)
	if err != nil || membership.TeamID != teamID {
		if err != nil && !errors.Is(err, repositories.ErrTeamMemberNotFound) {
			return fmt.Errorf("failed to check membership of user %d: %w", userID, err)
		}
		return ErrNotATeamMember
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.memberRepo.DeleteByTeam(ctx, tx, teamID); err != nil {
		return fmt.Errorf("failed to delete members of team %d: %w", teamID, err)
	}
	if err := s.teamRepo.Delete(ctx, tx, teamID); err != nil {
		return fmt.Errorf("failed to delete team %d: %w", teamID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit leave of team %d: %w", teamID, err)
	}

	s.logger.Info("team disbanded on leave",
		slog.Int("team_id", teamID),
		slog.Int("user_id", userID),
	)
	return nil
}

func (s *teamService) UpdateTeam(ctx context.Context, teamID int, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", teamID, err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrTeamNameRequired
		}
		team.Name = strings.TrimSpace(*input.Name)
	}
	if input.Player1Name != nil {
		team.Player1Name = input.Player1Name
	}
	if input.Player2Name != nil {
		team.Player2Name = input.Player2Name
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to update team %d: %w", teamID, err)
	}
	return team, nil
}

// DeleteTeam удаляет команду вместе с её матчами и составом (явный каскад в
// порядке: матчи, состав, команда), затем перепроецирует статус турнира -
// после удаления матчей формула может дать другой результат.
func (s *teamService) DeleteTeam(ctx context.Context, teamID int) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to load team %d: %w", teamID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.matchRepo.DeleteByTeam(ctx, tx, teamID); err != nil {
		return fmt.Errorf("failed to delete matches of team %d: %w", teamID, err)
	}
	if _, err := s.memberRepo.DeleteByTeam(ctx, tx, teamID); err != nil {
		return fmt.Errorf("failed to delete members of team %d: %w", teamID, err)
	}
	if err := s.teamRepo.Delete(ctx, tx, teamID); err != nil {
		return fmt.Errorf("failed to delete team %d: %w", teamID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deletion of team %d: %w", teamID, err)
	}

	if err := s.projector.refresh(ctx, nil, team.TournamentID); err != nil {
		return fmt.Errorf("failed to refresh status of tournament %d: %w", team.TournamentID, err)
	}
	return nil
}

func (s *teamService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams of tournament %d: %w", tournamentID, err)
	}

	for _, team := range teams {
		members, err := s.memberRepo.ListByTeam(ctx, team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list members of team %d: %w", team.ID, err)
		}
		for _, m := range members {
			team.Members = append(team.Members, *m)
		}
	}
	return teams, nil
}
