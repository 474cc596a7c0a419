package candidates

type candidateRequest struct {
	FullName       string `json:"fullName"`
	PassportNumber string `json:"passportNumber"`
	Country        string `json:"country"`
	JobTitle       string `json:"jobTitle"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Status         string `json:"status"`
	Notes          string `json:"notes"`
}

func (r candidateRequest) toInput() Input {
	return Input{
		FullName:       r.FullName,
		PassportNumber: r.PassportNumber,
		Country:        r.Country,
		JobTitle:       r.JobTitle,
		Phone:          r.Phone,
		Email:          r.Email,
		Status:         r.Status,
		Notes:          r.Notes,
	}
}
