package jobs

import (
	"strings"
	"time"
)

// Type is the employment type of a posting.
type Type string

const (
	TypeFullTime Type = "Full-time"
	TypePartTime Type = "Part-time"
	TypeContract Type = "Contract"
	TypeSeasonal Type = "Seasonal"
)

var types = []Type{TypeFullTime, TypePartTime, TypeContract, TypeSeasonal}

// ParseType matches s case-insensitively against the known job types.
func ParseType(s string) (Type, bool) {
	s = strings.TrimSpace(s)
	for _, t := range types {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Posting is a job advertised on the public board.
type Posting struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Country     string    `json:"country"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	Type        Type      `json:"type"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Input struct {
	Title       string
	Country     string
	Location    string
	Salary      string
	Type        string
	Description string
	Status      string
}
