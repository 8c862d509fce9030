package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed       = errors.New("validation failed")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrTournamentNameRequired = errors.New("tournament name is required")

	// Блокировка состава: после генерации расписания состав команд неизменяем
	ErrScheduleLocked = errors.New("matches have already been generated for this tournament")

	// Регистрация команд
	ErrRegistrationNotOpen      = errors.New("tournament is not open for registration")
	ErrAlreadyRegistered        = errors.New("user already has a team in this tournament")
	ErrPartnerAlreadyRegistered = errors.New("partner already has a team in this tournament")
	ErrPartnerNotFound          = errors.New("partner not found")
	ErrSelfPartner              = errors.New("cannot team up with yourself")
	ErrNotATeamMember           = errors.New("user is not a member of this team")
	ErrTeamNameConflict         = errors.New("team name is already in use in this tournament")

	// Расписание
	ErrNotEnoughTeams          = errors.New("at least 2 teams required to generate matches")
	ErrMatchesAlreadyGenerated = errors.New("matches already generated for this tournament")

	// Матчи
	ErrInvalidScore       = errors.New("score must be between 0 and 10")
	ErrNoWinner           = errors.New("cannot complete match: one team must reach 10 goals to win")
	ErrInvalidMatchStatus = errors.New("invalid match status provided")

	// Ошибки конфликтов
	ErrUserEmailConflict  = errors.New("email address is already in use")
	ErrUserNameConflict   = errors.New("username is already in use")
	ErrAdminAlreadyExists = errors.New("an admin user already exists")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")

	// Турниры
	ErrTournamentInvalidStatus = errors.New("invalid tournament status provided")
)
