package candidates

import "time"

// Status is the processing state of a candidate's application.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Candidate is a person the agency is placing abroad.
type Candidate struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	PassportNumber string    `json:"passportNumber"`
	Country        string    `json:"country"`
	JobTitle       string    `json:"jobTitle"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Status         Status    `json:"status"`
	Notes          string    `json:"notes"`
	TrackingID     string    `json:"trackingId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Input carries the editable fields of a candidate. TrackingID and CreatedAt
// are fixed at creation and have no place here.
type Input struct {
	FullName       string
	PassportNumber string
	Country        string
	JobTitle       string
	Phone          string
	Email          string
	Status         string
	Notes          string
}
