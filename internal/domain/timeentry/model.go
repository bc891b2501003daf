package timeentry

import "time"

// Entry is one user's hours for one day. Positive hours are worked time;
// negative hours record PTO (-8 is a full day off by convention).
type Entry struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	EntryDate   time.Time `json:"entry_date"`
	Hours       float64   `json:"hours"`
	Description string    `json:"description,omitempty"`
	UserName    string    `json:"user_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WeekView is a user's daily hours for one week keyed by ISO date.
type WeekView struct {
	UserID    int64              `json:"user_id"`
	WeekStart string             `json:"week_start"`
	WeekEnd   string             `json:"week_end"`
	WeekData  map[string]float64 `json:"week_data"`
	WeekTotal float64            `json:"week_total"`
}
