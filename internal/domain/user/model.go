package user

import "time"

// User is a team member tracked for ownership and capacity.
type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email,omitempty"`
	Tier      int       `json:"tier"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins the first and last name for display.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ValidTier reports whether t is a recognized organizational tier.
func ValidTier(t int) bool {
	return t >= 1 && t <= 3
}

// DaySummary is one day's logged hours for a user.
type DaySummary struct {
	EntryDate  time.Time `json:"entry_date"`
	TotalHours float64   `json:"total_hours"`
}
