package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/babyfoot-league/server/models"
	"github.com/babyfoot-league/server/repositories"
	"github.com/babyfoot-league/server/services"
)

func newTeamServiceForTest(
	teamRepo *MockTeamRepository,
	memberRepo *MockTeamMemberRepository,
	matchRepo *MockMatchRepository,
	tournamentRepo *MockTournamentRepository,
	userRepo *MockUserRepository,
) services.TeamService {
	return services.NewTeamService(
		nil,
		teamRepo,
		memberRepo,
		matchRepo,
		tournamentRepo,
		userRepo,
		testLogger(),
	)
}

func upcomingTournament(id int) *models.Tournament {
	return &models.Tournament{ID: id, Status: models.TournamentStatusUpcoming}
}

func TestTeamService_AddAdminTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("empty name", func(t *testing.T) {
		svc := newTeamServiceForTest(
			new(MockTeamRepository), new(MockTeamMemberRepository),
			new(MockMatchRepository), new(MockTournamentRepository), new(MockUserRepository),
		)

		_, err := svc.AddAdminTeam(ctx, 7, services.CreateAdminTeamInput{Name: "   "})

		assert.ErrorIs(t, err, services.ErrTeamNameRequired)
	})

	t.Run("schedule already generated locks the roster", func(t *testing.T) {
		teamRepo := new(MockTeamRepository)
		matchRepo := new(MockMatchRepository)
		tournamentRepo := new(MockTournamentRepository)
		svc := newTeamServiceForTest(teamRepo, new(MockTeamMemberRepository), matchRepo, tournamentRepo, new(MockUserRepository))

		tournamentRepo.On("GetByID", ctx, 7).Return(upcomingTournament(7), nil)
		matchRepo.On("CountByTournament", ctx, nil, 7).Return(6, nil)

		_, err := svc.AddAdminTeam(ctx, 7, services.CreateAdminTeamInput{
			Name:        "Table Kings",
			Player1Name: "Ivan",
			Player2Name: "Petr",
		})

		assert.ErrorIs(t, err, services.ErrScheduleLocked)
		teamRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("creates team with manual player names", func(t *testing.T) {
		teamRepo := new(MockTeamRepository)
		matchRepo := new(MockMatchRepository)
		tournamentRepo := new(MockTournamentRepository)
		svc := newTeamServiceForTest(teamRepo, new(MockTeamMemberRepository), matchRepo, tournamentRepo, new(MockUserRepository))

		tournamentRepo.On("GetByID", ctx, 7).Return(upcomingTournament(7), nil)
		matchRepo.On("CountByTournament", ctx, nil, 7).Return(0, nil)
		teamRepo.On("Create", ctx, nil, mock.AnythingOfType("*models.Team")).
			Run(func(args mock.Arguments) {
				args.Get(2).(*models.Team).ID = 15
			}).
			Return(nil)

		team, err := svc.AddAdminTeam(ctx, 7, services.CreateAdminTeamInput{
			Name:        "  Table Kings  ",
			Player1Name: "Ivan",
			Player2Name: "Petr",
		})

		assert.NoError(t, err)
		assert.Equal(t, 15, team.ID)
		assert.Equal(t, "Table Kings", team.Name)
		assert.Equal(t, "Ivan", *team.Player1Name)
		assert.Equal(t, "Petr", *team.Player2Name)
	})
}

func TestTeamService_RegisterTeam(t *testing.T) {
	ctx := context.Background()
	const userID = 100

	t.Run("registration closed once tournament started", func(t *testing.T) {
		tournamentRepo := new(MockTournamentRepository)
		svc := newTeamServiceForTest(
			new(MockTeamRepository), new(MockTeamMemberRepository),
			new(MockMatchRepository), tournamentRepo, new(MockUserRepository),
		)

		tournamentRepo.On("GetByID", ctx, 7).
			Return(&models.Tournament{ID: 7, Status: models.TournamentStatusInProgress}, nil)

		_, err := svc.RegisterTeam(ctx, 7, userID, services.RegisterTeamInput{
			TeamName:     "Duo",
			PartnerEmail: "partner@example.com",
		})

		assert.ErrorIs(t, err, services.ErrRegistrationNotOpen)
	})

	t.Run("schedule lock beats registration", func(t *testing.T) {
		matchRepo := new(MockMatchRepository)
		tournamentRepo := new(MockTournamentRepository)
		svc := newTeamServiceForTest(
			new(MockTeamRepository), new(MockTeamMemberRepository),
			matchRepo, tournamentRepo, new(MockUserRepository),
		)

		tournamentRepo.On("GetByID", ctx, 7).Return(upcomingTournament(7), nil)
		matchRepo.On("CountByTournament", ctx, nil, 7).Return(3, nil)

		_, err := svc.RegisterTeam(ctx, 7, userID, services.RegisterTeamInput{
			TeamName:     "Duo",
			PartnerEmail: "partner@example.com",
		})

		assert.ErrorIs(t, err, services.ErrScheduleLocked)
	})

	t.Run("user already registered in this tournament", func(t *testing.T) {
		memberRepo := new(MockTeamMemberRepository)
		matchRepo := new(MockMatchRepository)
		tournamentRepo := new(MockTournamentRepository)
		svc := newTeamServiceForTest(
			new(MockTeamRepository), memberRepo, matchRepo, tournamentRepo, new(MockUserRepository),
		)

		tournamentRepo.On("GetByID", ctx, 7).Return(upcomingTournament(7), nil)
		matchRepo.On("CountByTournament", ctx, nil, 7).Return(0, nil)
		memberRepo.On("FindByUserAndTournament", ctx, userID, 7).
			Return(&models.TeamMember{TeamID: 5, UserID: userID}, nil)

		_, err := svc.RegisterTeam(ctx, 7, userID, services.RegisterTeamInput{
			TeamName:     "Duo",
			PartnerEmail: "partner@example.com",
		})

		assert.ErrorIs(t, err, services.ErrAlreadyRegistered)
	})

	t.Run("partner email not found", func(t *testing.T) {
		memberRepo := new(MockTeamMemberRepository)
		matchRepo := new(MockMatchRepository)
		tournamentRepo := new(MockTournamentRepository)
		userRepo := new(MockUserRepository)
		svc := newTeamServiceForTest(
			new(MockTeamRepository), memberRepo, matchRepo, tournamentRepo, userRepo,
		)

		tournamentRepo.On("GetByID", ctx, 7).Return(upcomingTournament(7), nil)
		matchRepo.On("CountByTournament", ctx, nil, 7).Return(0, nil)
		memberRepo.On("FindByUserAndTournament", ctx, userID, 7).
			Return(nil, repositories.ErrTeamMemberNotFound)
		userRepo.On("GetByEmail", ctx, "ghost@example.com").
			Return(nil, repositories.ErrUserNotFound)

		_, err := svc.RegisterTeam(ctx, 7, userID, services.RegisterTeamInput{
			TeamName:     "Duo",
			PartnerEmail: "ghost@example.com",
		})

		assert.ErrorIs(t, err, services.ErrPartnerNotFound)
	})

	t.Run("partnering with yourself", func(t *testing.T) {
		memberRepo := new(MockTeamMemberRepository)
		matchRepo := new(MockMatchRepository)
		tournamentRepo := new(MockTournamentRepository)
		userRepo := new(MockUserRepository)
		svc := newTeamServiceForTest(
			new(MockTeamRepository), memberRepo, matchRepo, tournamentRepo, userRepo,
		)

		tournamentRepo.On("GetByID", ctx, 7).Return(upcomingTournament(7), nil)
		matchRepo.On("CountByTournament", ctx, nil, 7).Return(0, nil)
		memberRepo.On("FindByUserAndTournament", ctx, userID, 7).
			Return(nil, repositories.ErrTeamMemberNotFound)
		userRepo.On("GetByEmail", ctx, "me@example.com").
			Return(&models.User{ID: userID, Email: "me@example.com"}, nil)

		_, err := svc.RegisterTeam(ctx, 7, userID, services.RegisterTeamInput{
			TeamName:     "Duo",
			PartnerEmail: "me@example.com",
		})

		assert.ErrorIs(t, err, services.ErrSelfPartner)
	})

	t.Run("partner already registered", func(t *testing.T) {
		memberRepo := new(MockTeamMemberRepository)
		matchRepo := new(MockMatchRepository)
		tournamentRepo := new(MockTournamentRepository)
		userRepo := new(MockUserRepository)
		svc := newTeamServiceForTest(
			new(MockTeamRepository), memberRepo, matchRepo, tournamentRepo, userRepo,
		)

		tournamentRepo.On("GetByID", ctx, 7).Return(upcomingTournament(7), nil)
		matchRepo.On("CountByTournament", ctx, nil, 7).Return(0, nil)
		memberRepo.On("FindByUserAndTournament", ctx, userID, 7).
			Return(nil, repositories.ErrTeamMemberNotFound)
		userRepo.On("GetByEmail", ctx, "partner@example.com").
			Return(&models.User{ID: 200, Email: "partner@example.com"}, nil)
		memberRepo.On("FindByUserAndTournament", ctx, 200, 7).
			Return(&models.TeamMember{TeamID: 8, UserID: 200}, nil)

		_, err := svc.RegisterTeam(ctx, 7, userID, services.RegisterTeamInput{
			TeamName:     "Duo",
			PartnerEmail: "partner@example.com",
		})

		assert.ErrorIs(t, err, services.ErrPartnerAlreadyRegistered)
	})
}

func TestTeamService_LeaveTeam(t *testing.T) {
	ctx := context.Background()
	const userID = 100

	t.Run("locked after schedule generation", func(t *testing.T) {
		teamRepo := new(MockTeamRepository)
		matchRepo := new(MockMatchRepository)
		svc := newTeamServiceForTest(
			teamRepo, new(MockTeamMemberRepository), matchRepo,
			new(MockTournamentRepository), new(MockUserRepository),
		)

		teamRepo.On("GetByID", ctx, 15).
			Return(&models.Team{ID: 15, TournamentID: 7}, nil)
		matchRepo.On("CountByTournament", ctx, nil, 7).Return(6, nil)

		err := svc.LeaveTeam(ctx, 15, userID)

		assert.ErrorIs(t, err, services.ErrScheduleLocked)
	})

	t.Run("user is not in the team", func(t *testing.T) {
		teamRepo := new(MockTeamRepository)
		memberRepo := new(MockTeamMemberRepository)
		matchRepo := new(MockMatchRepository)
		svc := newTeamServiceForTest(
			teamRepo, memberRepo, matchRepo,
			new(MockTournamentRepository), new(MockUserRepository),
		)

		teamRepo.On("GetByID", ctx, 15).
			Return(&models.Team{ID: 15, TournamentID: 7}, nil)
		matchRepo.On("CountByTournament", ctx, nil, 7).Return(0, nil)
		memberRepo.On("FindByUserAndTournament", ctx, userID, 7).
			Return(nil, repositories.ErrTeamMemberNotFound)

		err := svc.LeaveTeam(ctx, 15, userID)

		assert.ErrorIs(t, err, services.ErrNotATeamMember)
	})

	t.Run("membership in a different team", func(t *testing.T) {
		teamRepo := new(MockTeamRepository)
		memberRepo := new(MockTeamMemberRepository)
		matchRepo := new(MockMatchRepository)
		svc := newTeamServiceForTest(
			teamRepo, memberRepo, matchRepo,
			new(MockTournamentRepository), new(MockUserRepository),
		)

		teamRepo.On("GetByID", ctx, 15).
			Return(&models.Team{ID: 15, TournamentID: 7}, nil)
		matchRepo.On("CountByTournament", ctx, nil, 7).Return(0, nil)
		memberRepo.On("FindByUserAndTournament", ctx, userID, 7).
			Return(&models.TeamMember{TeamID: 99, UserID: userID}, nil)

		err := svc.LeaveTeam(ctx, 15, userID)

		assert.ErrorIs(t, err, services.ErrNotATeamMember)
		teamRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTeamService_UpdateTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("rename", func(t *testing.T) {
		teamRepo := new(MockTeamRepository)
		svc := newTeamServiceForTest(
			teamRepo, new(MockTeamMemberRepository), new(MockMatchRepository),
			new(MockTournamentRepository), new(MockUserRepository),
		)

		teamRepo.On("GetByID", ctx, 15).
			Return(&models.Team{ID: 15, TournamentID: 7, Name: "Old"}, nil)
		teamRepo.On("Update", ctx, mock.AnythingOfType("*models.Team")).Return(nil)

		newName := "New Name"
		team, err := svc.UpdateTeam(ctx, 15, services.UpdateTeamInput{Name: &newName})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", team.Name)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		teamRepo := new(MockTeamRepository)
		svc := newTeamServiceForTest(
			teamRepo, new(MockTeamMemberRepository), new(MockMatchRepository),
			new(MockTournamentRepository), new(MockUserRepository),
		)

		teamRepo.On("GetByID", ctx, 15).
			Return(&models.Team{ID: 15, Name: "Old"}, nil)

		blank := "  "
		_, err := svc.UpdateTeam(ctx, 15, services.UpdateTeamInput{Name: &blank})

		assert.ErrorIs(t, err, services.ErrTeamNameRequired)
		teamRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestTeamService_ListByTournament(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches members to each team", func(t *testing.T) {
		teamRepo := new(MockTeamRepository)
		memberRepo := new(MockTeamMemberRepository)
		tournamentRepo := new(MockTournamentRepository)
		svc := newTeamServiceForTest(
			teamRepo, memberRepo, new(MockMatchRepository),
			tournamentRepo, new(MockUserRepository),
		)

		tournamentRepo.On("GetByID", ctx, 7).Return(upcomingTournament(7), nil)
		teamRepo.On("ListByTournament", ctx, 7).Return([]*models.Team{
			{ID: 15, TournamentID: 7, Name: "Duo"},
		}, nil)
		memberRepo.On("ListByTeam", ctx, 15).Return([]*models.TeamMember{
			{TeamID: 15, UserID: 100},
			{TeamID: 15, UserID: 200},
		}, nil)

		teams, err := svc.ListByTournament(ctx, 7)

		assert.NoError(t, err)
		assert.Len(t, teams, 1)
		assert.Len(t, teams[0].Members, 2)
	})

	t.Run("unknown tournament", func(t *testing.T) {
		tournamentRepo := new(MockTournamentRepository)
		svc := newTeamServiceForTest(
			new(MockTeamRepository), new(MockTeamMemberRepository), new(MockMatchRepository),
			tournamentRepo, new(MockUserRepository),
		)

		tournamentRepo.On("GetByID", ctx, 7).Return(nil, repositories.ErrTournamentNotFound)

		_, err := svc.ListByTournament(ctx, 7)

		assert.ErrorIs(t, err, services.ErrTournamentNotFound)
	})
}
