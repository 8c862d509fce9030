package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/babyfoot-league/server/models"
	"github.com/lib/pq"
)

var (
	ErrTeamMemberNotFound = errors.New("team member not found")
	// ErrMembershipConflict сигнализирует о нарушении UNIQUE(tournament_id, user_id):
	// пользователь уже состоит в команде этого турнира. Ограничение держит БД,
	// прикладная предпроверка сама по себе гонкоопасна.
	ErrMembershipConflict = errors.New("user already has a team in this tournament")
)

type TeamMemberRepository interface {
	Create(ctx context.Context, exec SQLExecutor, member *models.TeamMember) error
	FindByUserAndTournament(ctx context.Context, userID, tournamentID int) (*models.TeamMember, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.TeamMember, error)
	DeleteByTeam(ctx context.Context, exec SQLExecutor, teamID int) (int, error)
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
}

type postgresTeamMemberRepository struct {
	db *sql.DB
}

func NewPostgresTeamMemberRepository(db *sql.DB) TeamMemberRepository {
	return &postgresTeamMemberRepository{db: db}
}

func (r *postgresTeamMemberRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamMemberRepository) Create(ctx context.Context, exec SQLExecutor, member *models.TeamMember) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO team_members (team_id, tournament_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		member.TeamID, member.TournamentID, member.UserID,
	).Scan(&member.ID, &member.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrMembershipConflict
		}
		return err
	}
	return nil
}

func (r *postgresTeamMemberRepository) FindByUserAndTournament(ctx context.Context, userID, tournamentID int) (*models.TeamMember, error) {
	query := `
		SELECT id, team_id, tournament_id, user_id, created_at
		FROM team_members
		WHERE user_id = $1 AND tournament_id = $2`

	m := &models.TeamMember{}
	err := r.db.QueryRowContext(ctx, query, userID, tournamentID).Scan(
		&m.ID, &m.TeamID, &m.TournamentID, &m.UserID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresTeamMemberRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.TeamMember, error) {
	query := `
		SELECT tm.id, tm.team_id, tm.tournament_id, tm.user_id, tm.created_at,
		       u.id, u.username, u.email, u.role, u.created_at
		FROM team_members tm
		JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = $1
		ORDER BY tm.created_at ASC, tm.id ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*models.TeamMember, 0)
	for rows.Next() {
		m := &models.TeamMember{User: &models.User{}}
		if scanErr := rows.Scan(
			&m.ID, &m.TeamID, &m.TournamentID, &m.UserID, &m.CreatedAt,
			&m.User.ID, &m.User.Username, &m.User.Email, &m.User.Role, &m.User.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *postgresTeamMemberRepository) DeleteByTeam(ctx context.Context, exec SQLExecutor, teamID int) (int, error) {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM team_members WHERE team_id = $1`, teamID)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	return int(affected), err
}

func (r *postgresTeamMemberRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM team_members WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	return int(affected), err
}
