package employee

import "github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"

type BusinessCardRequest struct {
	auth.Credentials
}

func (r *BusinessCardRequest) Validate() error {
	return nil
}

// BusinessCard is the electronic business card rendered by the client.
type BusinessCard struct {
	EmployeeNo  string  `json:"employee_no"`
	Name        string  `json:"name"`
	EnglishName *string `json:"english_name,omitempty"`
	JobTitle    *string `json:"job_title,omitempty"`
	Department  *string `json:"department,omitempty"`
	Company     string  `json:"company"`
	Email       *string `json:"email,omitempty"`
	Mobile      *string `json:"mobile,omitempty"`
	OfficePhone *string `json:"office_phone,omitempty"`
	Extension   *string `json:"extension,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}
