package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/babyfoot-league/server/models"
	"github.com/babyfoot-league/server/repositories"
)

// Моки репозиториев для сервисных тестов. Разделяются всеми *_test.go
// файлами пакета.

type MockTournamentRepository struct {
	mock.Mock
}

func (m *MockTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	args := m.Called(ctx, tournament)
	return args.Error(0)
}

func (m *MockTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	args := m.Called(ctx, tournament)
	return args.Error(0)
}

func (m *MockTournamentRepository) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.TournamentStatus) error {
	args := m.Called(ctx, exec, id, status)
	return args.Error(0)
}

func (m *MockTournamentRepository) UpdateBannerKey(ctx context.Context, id int, bannerKey *string) error {
	args := m.Called(ctx, id, bannerKey)
	return args.Error(0)
}

func (m *MockTournamentRepository) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	args := m.Called(ctx, exec, id)
	return args.Error(0)
}

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error {
	args := m.Called(ctx, exec, team)
	return args.Error(0)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Team), args.Error(1)
}

func (m *MockTeamRepository) Update(ctx context.Context, team *models.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	args := m.Called(ctx, exec, id)
	return args.Error(0)
}

func (m *MockTeamRepository) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	args := m.Called(ctx, exec, tournamentID)
	return args.Int(0), args.Error(1)
}

type MockTeamMemberRepository struct {
	mock.Mock
}

func (m *MockTeamMemberRepository) Create(ctx context.Context, exec repositories.SQLExecutor, member *models.TeamMember) error {
	args := m.Called(ctx, exec, member)
	return args.Error(0)
}

func (m *MockTeamMemberRepository) FindByUserAndTournament(ctx context.Context, userID, tournamentID int) (*models.TeamMember, error) {
	args := m.Called(ctx, userID, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.TeamMember, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) DeleteByTeam(ctx context.Context, exec repositories.SQLExecutor, teamID int) (int, error) {
	args := m.Called(ctx, exec, teamID)
	return args.Int(0), args.Error(1)
}

func (m *MockTeamMemberRepository) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	args := m.Called(ctx, exec, tournamentID)
	return args.Int(0), args.Error(1)
}

type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, matches []*models.Match) error {
	args := m.Called(ctx, exec, matches)
	return args.Error(0)
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Match), args.Error(1)
}

func (m *MockMatchRepository) CountByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	args := m.Called(ctx, exec, tournamentID)
	return args.Int(0), args.Error(1)
}

func (m *MockMatchRepository) Update(ctx context.Context, match *models.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	args := m.Called(ctx, exec, tournamentID)
	return args.Int(0), args.Error(1)
}

func (m *MockMatchRepository) DeleteByTeam(ctx context.Context, exec repositories.SQLExecutor, teamID int) (int, error) {
	args := m.Called(ctx, exec, teamID)
	return args.Int(0), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role models.UserRole) (int, error) {
	args := m.Called(ctx, role)
	return args.Int(0), args.Error(1)
}
