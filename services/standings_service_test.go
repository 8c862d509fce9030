package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/babyfoot-league/server/models"
	"github.com/babyfoot-league/server/repositories"
	"github.com/babyfoot-league/server/services"
)

func TestStandingsService_GetStandings(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown tournament", func(t *testing.T) {
		tournamentRepo := new(MockTournamentRepository)
		svc := services.NewStandingsService(tournamentRepo, new(MockTeamRepository), new(MockMatchRepository))

		tournamentRepo.On("GetByID", ctx, 7).Return(nil, repositories.ErrTournamentNotFound)

		_, err := svc.GetStandings(ctx, 7)

		assert.ErrorIs(t, err, services.ErrTournamentNotFound)
	})

	t.Run("computes table from completed matches", func(t *testing.T) {
		tournamentRepo := new(MockTournamentRepository)
		teamRepo := new(MockTeamRepository)
		matchRepo := new(MockMatchRepository)
		svc := services.NewStandingsService(tournamentRepo, teamRepo, matchRepo)

		tournamentRepo.On("GetByID", ctx, 7).
			Return(&models.Tournament{ID: 7, Status: models.TournamentStatusInProgress}, nil)

		// Загрузка идёт в дочернем контексте errgroup.
		teamRepo.On("ListByTournament", mock.Anything, 7).Return([]*models.Team{
			{ID: 1, Name: "Alpha"},
			{ID: 2, Name: "Bravo"},
		}, nil)
		ten, four := 10, 4
		matchRepo.On("ListByTournament", mock.Anything, 7).Return([]*models.Match{
			{
				HomeTeamID: 1, AwayTeamID: 2,
				Status:    models.MatchStatusCompleted,
				HomeScore: &ten, AwayScore: &four,
			},
		}, nil)

		rows, err := svc.GetStandings(ctx, 7)

		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "Alpha", rows[0].Team.Name)
		assert.Equal(t, 1, rows[0].Position)
		assert.Equal(t, 3, rows[0].Points)
		assert.Equal(t, 2, rows[1].Position)
		assert.Equal(t, 0, rows[1].Points)
	})

	t.Run("propagates load failures", func(t *testing.T) {
		tournamentRepo := new(MockTournamentRepository)
		teamRepo := new(MockTeamRepository)
		matchRepo := new(MockMatchRepository)
		svc := services.NewStandingsService(tournamentRepo, teamRepo, matchRepo)

		tournamentRepo.On("GetByID", ctx, 7).
			Return(&models.Tournament{ID: 7}, nil)
		teamRepo.On("ListByTournament", mock.Anything, 7).
			Return(nil, errors.New("connection reset"))
		matchRepo.On("ListByTournament", mock.Anything, 7).
			Return([]*models.Match{}, nil)

		_, err := svc.GetStandings(ctx, 7)

		assert.Error(t, err)
	})
}
