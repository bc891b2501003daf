package project

import "time"

// Status is the delivery state of a project.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusInPlanning Status = "in_planning"
	StatusOnHold     Status = "on_hold"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusActive     Status = "active"
	StatusOngoing    Status = "ongoing"
	StatusDelivering Status = "delivering"
)

// ActiveStatuses is the subset of statuses included in reporting.
var ActiveStatuses = []Status{StatusInProgress, StatusActive, StatusOngoing, StatusDelivering}

// Valid reports whether the status belongs to the closed set.
func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusInPlanning, StatusOnHold, StatusCompleted,
		StatusCancelled, StatusActive, StatusOngoing, StatusDelivering:
		return true
	}
	return false
}

// Health is the traffic-light state of a project.
type Health string

const (
	HealthGreen  Health = "green"
	HealthYellow Health = "yellow"
	HealthRed    Health = "red"
)

// Valid reports whether the health belongs to the closed set.
func (h Health) Valid() bool {
	return h == HealthGreen || h == HealthYellow || h == HealthRed
}

// Rank orders health values for display: red before yellow before green,
// anything unrecognized last.
func (h Health) Rank() int {
	switch h {
	case HealthRed:
		return 1
	case HealthYellow:
		return 2
	case HealthGreen:
		return 3
	default:
		return 4
	}
}

// Project is a tracked engagement with revenue value and tiered ownership.
type Project struct {
	ID                int64      `json:"id"`
	Name              string     `json:"project_name"`
	Tier1OwnerID      *int64     `json:"tier1_owner_id"`
	Tier2OwnerID      *int64     `json:"tier2_owner_id"`
	Tier3Owners       []int64    `json:"tier3_owners"`
	Status            Status     `json:"status"`
	Health            Health     `json:"health"`
	ARRValue          *float64   `json:"arr_value"`
	CloseDate         *time.Time `json:"close_date"`
	StartDate         *time.Time `json:"start_date"`
	RiskDescription   string     `json:"risk_description,omitempty"`
	AskDescription    string     `json:"ask_description,omitempty"`
	ImpactDescription string     `json:"impact_description,omitempty"`
	IsClosed          bool       `json:"is_closed"`
	Tier1Name         string     `json:"tier_1_name,omitempty"`
	Tier2Name         string     `json:"tier_2_name,omitempty"`
	LatestNote        string     `json:"latest_note"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Note is a timestamped free-text note attached to a project.
type Note struct {
	ID            int64     `json:"id"`
	ProjectID     int64     `json:"project_id"`
	NoteText      string    `json:"note_text"`
	CreatedBy     *int64    `json:"created_by"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// HealthChange records one transition in a project's health history.
type HealthChange struct {
	ID            int64     `json:"id"`
	ProjectID     int64     `json:"project_id"`
	Health        Health    `json:"health"`
	ChangedBy     *int64    `json:"changed_by"`
	ChangedByName string    `json:"changed_by_name,omitempty"`
	ChangeReason  string    `json:"change_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CustomField is an ad-hoc key/value attribute on a project.
type CustomField struct {
	FieldName  string `json:"field_name"`
	FieldValue string `json:"field_value"`
	FieldType  string `json:"field_type"`
}

// Detail is a project with its notes and custom fields attached.
type Detail struct {
	Project
	Notes        []Note        `json:"notes"`
	CustomFields []CustomField `json:"custom_fields"`
}
