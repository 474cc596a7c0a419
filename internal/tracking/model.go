package tracking

import (
	"strings"
	"time"
)

// Status is the overall stage of a tracked application.
type Status string

const (
	StatusProcessing         Status = "Processing"
	StatusDocumentVerified   Status = "Document Verified"
	StatusEmbassyAppointment Status = "Embassy Appointment"
	StatusMedicalCompleted   Status = "Medical Completed"
	StatusVisaApproved       Status = "Visa Approved"
	StatusFlightReady        Status = "Flight Ready"
	StatusCompleted          Status = "Completed"
	StatusRejected           Status = "Rejected"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{
	StatusProcessing,
	StatusDocumentVerified,
	StatusEmbassyAppointment,
	StatusMedicalCompleted,
	StatusVisaApproved,
	StatusFlightReady,
	StatusCompleted,
	StatusRejected,
}

// ParseStatus matches s case-insensitively against the known statuses.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	for _, status := range Statuses {
		if strings.EqualFold(string(status), s) {
			return status, true
		}
	}
	return "", false
}

// StepState is the stored state of a single timeline step.
type StepState string

const (
	StatePending    StepState = "pending"
	StateInProgress StepState = "in-progress"
	StateCompleted  StepState = "completed"
)

func (s StepState) Valid() bool {
	switch s {
	case StatePending, StateInProgress, StateCompleted:
		return true
	}
	return false
}

// TimelineStep is one milestone in a record's timeline. Date is YYYY-MM-DD.
type TimelineStep struct {
	Step  string    `json:"step"`
	Date  string    `json:"date"`
	Note  string    `json:"note,omitempty"`
	State StepState `json:"state"`
}

// Record tracks one application. Candidate fields are a snapshot taken at
// creation; CandidateID is kept for display only.
type Record struct {
	ID             string         `json:"id"`
	TrackingID     string         `json:"trackingId"`
	CandidateID    string         `json:"candidateId"`
	CandidateName  string         `json:"candidateName"`
	PassportNumber string         `json:"passportNumber"`
	JobTitle       string         `json:"jobTitle"`
	Destination    string         `json:"destination"`
	Status         Status         `json:"status"`
	Timeline       []TimelineStep `json:"timeline"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// CreateInput holds what an admin supplies when opening a record.
type CreateInput struct {
	CandidateID string
	Status      string
	Timeline    []TimelineStep
}

// UpdateInput replaces status and timeline. The pointer fields echo values an
// edit form may send back; a non-nil value must match what is stored.
type UpdateInput struct {
	Status   string
	Timeline []TimelineStep

	TrackingID     *string
	CandidateID    *string
	CandidateName  *string
	PassportNumber *string
	JobTitle       *string
	Destination    *string
	CreatedAt      *time.Time
}

func cloneTimeline(steps []TimelineStep) []TimelineStep {
	if steps == nil {
		return nil
	}
	out := make([]TimelineStep, len(steps))
	copy(out, steps)
	return out
}

func cloneRecord(r Record) Record {
	r.Timeline = cloneTimeline(r.Timeline)
	return r
}
