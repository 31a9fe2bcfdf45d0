package models

type PlateInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type PlateSearch struct {
	PlateID string `json:"plateID,omitempty"`
	Name    string `json:"name,omitempty"`
	Page
}

// ModerationSearch filters moderator appointments.
type ModerationSearch struct {
	ModerationID      string `json:"mpID,omitempty"`
	PlateID           string `json:"plate__plateID,omitempty"`
	PlateName         string `json:"plate__name,omitempty"`
	ModeratorUserID   string `json:"moderator__userID,omitempty"`
	ModeratorUsername string `json:"moderator__username,omitempty"`
	Page
}

// Appointment makes a user moderator of a plate.
type Appointment struct {
	Plate     int64 `json:"plate"`
	Moderator int64 `json:"moderator"`
}
