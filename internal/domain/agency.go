package domain

// AgencyProfile is the singleton identity printed on every invoice
type AgencyProfile struct {
	Name                  string `json:"name" validate:"required"`
	Address               string `json:"address"`
	Phone                 string `json:"phone"`
	Email                 string `json:"email" validate:"omitempty,email"`
	GSTIN                 string `json:"gstIn"`
	Website               string `json:"website,omitempty"`
	LogoURL               string `json:"logoUrl,omitempty" validate:"omitempty,datauri"`
	CustomInvoiceTemplate string `json:"customInvoiceTemplate,omitempty"`
}

// DefaultAgencyProfile is used until the user saves their own details
func DefaultAgencyProfile() AgencyProfile {
	return AgencyProfile{
		Name:    "Your Digital Agency Name",
		Address: "123, Tech Park, Bangalore, India - 560001",
		Phone:   "+91 98765 43210",
		Email:   "billing@youragency.com",
		GSTIN:   "29ABCDE1234F1Z5",
	}
}

// Validate returns an error if the profile is invalid
func (a *AgencyProfile) Validate() error {
	return validateStruct("agency", a)
}
