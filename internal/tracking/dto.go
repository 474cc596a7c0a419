package tracking

import "time"

type createRequest struct {
	CandidateID string         `json:"candidateId"`
	Status      string         `json:"status"`
	Timeline    []TimelineStep `json:"timeline"`
}

type updateRequest struct {
	Status   string         `json:"status"`
	Timeline []TimelineStep `json:"timeline"`

	TrackingID     *string    `json:"trackingId"`
	CandidateID    *string    `json:"candidateId"`
	CandidateName  *string    `json:"candidateName"`
	PassportNumber *string    `json:"passportNumber"`
	JobTitle       *string    `json:"jobTitle"`
	Destination    *string    `json:"destination"`
	CreatedAt      *time.Time `json:"createdAt"`
}

func (r updateRequest) toInput() UpdateInput {
	return UpdateInput{
		Status:         r.Status,
		Timeline:       r.Timeline,
		TrackingID:     r.TrackingID,
		CandidateID:    r.CandidateID,
		CandidateName:  r.CandidateName,
		PassportNumber: r.PassportNumber,
		JobTitle:       r.JobTitle,
		Destination:    r.Destination,
		CreatedAt:      r.CreatedAt,
	}
}
