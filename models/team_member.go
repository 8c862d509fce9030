package models

import "time"

// TeamMember связывает пользователя с командой. TournamentID денормализован,
// чтобы ограничение UNIQUE(tournament_id, user_id) держала сама БД:
// пользователь состоит максимум в одной команде на турнир.
type TeamMember struct {
	ID           int       `json:"id" db:"id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	UserID       int       `json:"user_id" db:"user_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	User *User `json:"user,omitempty" db:"-"`
}
