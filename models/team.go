package models

import "time"

// Team принадлежит ровно одному турниру. Команда либо создана админом
// (заполнены Player1Name/Player2Name), либо зарегистрирована пользователями
// (ссылки в Members). Обе формы одинаково участвуют в расписании.
type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	Player1Name  *string   `json:"player1_name,omitempty" db:"player1_name"`
	Player2Name  *string   `json:"player2_name,omitempty" db:"player2_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Members []TeamMember `json:"members,omitempty" db:"-"`
}
