package service

import (
	"context"
	"time"

	"github.com/andy/agencyflow/internal/billing"
	"github.com/andy/agencyflow/internal/repository"
	"github.com/andy/agencyflow/internal/share"
)

// Alert is the owner's reminder about renewals due in one or two days
type Alert struct {
	Renewals    []billing.Renewal
	Message     string
	WhatsAppURL string
	MailtoURL   string
}

// ReminderService reports upcoming monthly renewals
type ReminderService interface {
	// Upcoming lists renewals from five days overdue to a week ahead
	Upcoming(ctx context.Context, now time.Time) ([]billing.Renewal, error)

	// Alert builds the owner alert, or returns nil when nothing is due soon
	Alert(ctx context.Context, now time.Time) (*Alert, error)
}

type reminderService struct {
	clientRepo repository.ClientRepository
	agencyRepo repository.AgencyRepository
}

// NewReminderService creates a new reminder service
func NewReminderService(clientRepo repository.ClientRepository, agencyRepo repository.AgencyRepository) ReminderService {
	return &reminderService{
		clientRepo: clientRepo,
		agencyRepo: agencyRepo,
	}
}

func (s *reminderService) Upcoming(ctx context.Context, now time.Time) ([]billing.Renewal, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return billing.Upcoming(clients, now), nil
}

func (s *reminderService) Alert(ctx context.Context, now time.Time) (*Alert, error) {
	upcoming, err := s.Upcoming(ctx, now)
	if err != nil {
		return nil, err
	}

	soon := billing.DueSoon(upcoming)
	if len(soon) == 0 {
		return nil, nil
	}

	agency, err := s.agencyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	msg := billing.OwnerAlert(soon)
	return &Alert{
		Renewals:    soon,
		Message:     msg,
		WhatsAppURL: share.WhatsAppURL(agency.Phone, msg),
		MailtoURL:   share.MailtoURL(agency.Email, share.AlertSubject, msg),
	}, nil
}
