package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andy/agencyflow/internal/domain"
)

// AgencyRepo stores the agency profile document (singleton)
type AgencyRepo struct {
	records RecordRepository
}

// NewAgencyRepo creates a new AgencyRepo
func NewAgencyRepo(records RecordRepository) *AgencyRepo {
	return &AgencyRepo{records: records}
}

// Get returns the saved profile, or the defaults if none was saved yet
func (r *AgencyRepo) Get(ctx context.Context) (*domain.AgencyProfile, error) {
	raw, found, err := r.records.Get(ctx, KeyProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to get agency profile: %w", err)
	}

	profile := domain.DefaultAgencyProfile()
	if !found {
		return &profile, nil
	}
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("failed to decode agency profile: %w", err)
	}
	return &profile, nil
}

// Save writes the whole profile
func (r *AgencyRepo) Save(ctx context.Context, profile *domain.AgencyProfile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid agency profile: %w", err)
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode agency profile: %w", err)
	}
	if err := r.records.Put(ctx, KeyProfile, string(data)); err != nil {
		return fmt.Errorf("failed to save agency profile: %w", err)
	}
	return nil
}
