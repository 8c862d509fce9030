package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/babyfoot-league/server/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	// ErrMatchNumberConflict - нарушение UNIQUE(tournament_id, match_number).
	// Ограничение одновременно защищает от двойной генерации расписания:
	// вторая конкурентная вставка упирается в него и откатывается.
	ErrMatchNumberConflict = errors.New("match number already exists for this tournament")
	ErrMatchTeamInvalid    = errors.New("match team reference invalid")
)

type MatchRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error)
	CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
	Update(ctx context.Context, match *models.Match) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
	DeleteByTeam(ctx context.Context, exec SQLExecutor, teamID int) (int, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (tournament_id, home_team_id, away_team_id, match_number, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	for _, m := range matches {
		err := executor.QueryRowContext(ctx, query,
			m.TournamentID, m.HomeTeamID, m.AwayTeamID, m.MatchNumber, m.Status,
		).Scan(&m.ID)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) {
				switch pqErr.Code {
				case "23505":
					return ErrMatchNumberConflict
				case "23503":
					return ErrMatchTeamInvalid
				}
			}
			return fmt.Errorf("failed to insert match %d: %w", m.MatchNumber, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, tournament_id, home_team_id, away_team_id, match_number, status, home_score, away_score
		FROM matches
		WHERE id = $1`

	m := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.TournamentID, &m.HomeTeamID, &m.AwayTeamID,
		&m.MatchNumber, &m.Status, &m.HomeScore, &m.AwayScore,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	query := `
		SELECT id, tournament_id, home_team_id, away_team_id, match_number, status, home_score, away_score
		FROM matches
		WHERE tournament_id = $1
		ORDER BY match_number ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m := &models.Match{}
		if scanErr := rows.Scan(
			&m.ID, &m.TournamentID, &m.HomeTeamID, &m.AwayTeamID,
			&m.MatchNumber, &m.Status, &m.HomeScore, &m.AwayScore,
		); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	executor := r.getExecutor(exec)
	var count int
	err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches WHERE tournament_id = $1`, tournamentID).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches SET
			status = $1,
			home_score = $2,
			away_score = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, match.Status, match.HomeScore, match.AwayScore, match.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	return int(affected), err
}

func (r *postgresMatchRepository) DeleteByTeam(ctx context.Context, exec SQLExecutor, teamID int) (int, error) {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`DELETE FROM matches WHERE home_team_id = $1 OR away_team_id = $1`, teamID)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	return int(affected), err
}
