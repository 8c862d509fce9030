package models

import "time"

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
// Статус является производным от статусов матчей (см. services), кроме
// явного административного override (например, CANCELLED).
type TournamentStatus string

const (
	TournamentStatusUpcoming   TournamentStatus = "UPCOMING"
	TournamentStatusInProgress TournamentStatus = "IN_PROGRESS"
	TournamentStatusCompleted  TournamentStatus = "COMPLETED"
	TournamentStatusCancelled  TournamentStatus = "CANCELLED"
)

// Tournament представляет турнир по настольному футболу.
type Tournament struct {
	ID          int              `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Description *string          `json:"description,omitempty" db:"description"`
	Date        time.Time        `json:"date" db:"date"`
	Status      TournamentStatus `json:"status" db:"status"`
	CreatedByID int              `json:"created_by_id" db:"created_by_id"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	BannerKey   *string          `json:"-" db:"banner_key"`
	BannerURL   *string          `json:"banner_url,omitempty" db:"-"`

	// Опциональные связанные сущности (не мапятся напрямую)
	CreatedBy *User   `json:"created_by,omitempty" db:"-"`
	Teams     []Team  `json:"teams,omitempty" db:"-"`
	Matches   []Match `json:"matches,omitempty" db:"-"`
}
