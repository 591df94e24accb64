package domain

import "strings"

// ServiceDefinition is a catalog entry with a standard monthly price
type ServiceDefinition struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Notes       string  `json:"notes,omitempty"`
}

// NewServiceDefinition creates a catalog entry with a fresh id
func NewServiceDefinition(name string, price float64, description string) *ServiceDefinition {
	return &ServiceDefinition{
		ID:          NewID(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       price,
	}
}

// Validate returns an error if the service is invalid
func (s *ServiceDefinition) Validate() error {
	return validateStruct("service", s)
}

// DefaultServices is the catalog seeded on a fresh installation
func DefaultServices() []ServiceDefinition {
	return []ServiceDefinition{
		{ID: "1", Name: "Meta Ads (FB/Insta)", Description: "Campaign setup, ad creatives, and weekly optimization.", Price: 25000, Notes: "Ad spend is separate."},
		{ID: "2", Name: "Google Ads", Description: "Search and Display network campaigns with keyword research.", Price: 30000, Notes: "Includes monthly reporting."},
		{ID: "3", Name: "SEO Standard", Description: "On-page and Off-page optimization, 5 blogs/month.", Price: 20000},
		{ID: "4", Name: "Website Development", Description: "5-page responsive website on WordPress or React.", Price: 50000, Notes: "One-time cost."},
		{ID: "5", Name: "Social Media Mgmt", Description: "12 posts per month + Community management.", Price: 15000},
	}
}
