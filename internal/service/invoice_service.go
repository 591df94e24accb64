package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/andy/agencyflow/internal/assistant"
	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/invoice"
	"github.com/andy/agencyflow/internal/money"
	"github.com/andy/agencyflow/internal/repository"
	"github.com/andy/agencyflow/internal/share"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrNoContact       = errors.New("client has no contact details for this channel")
)

// Drafter writes client messages. *assistant.Assistant satisfies it.
type Drafter interface {
	DraftMessage(ctx context.Context, client *domain.Client, kind assistant.MessageKind, due float64) string
}

// InvoiceService starts invoice sessions, prints them and shares the result
type InvoiceService interface {
	// StartSession takes the next invoice number and seeds items from the client
	StartSession(ctx context.Context, clientRef string, now time.Time) (*invoice.Session, error)

	// Print renders the session to a static page, writes it to the output
	// directory and records it in the issued invoice log
	Print(ctx context.Context, s *invoice.Session) (*domain.IssuedInvoice, error)

	GetIssued(ctx context.Context, number string) (*domain.IssuedInvoice, error)
	ListIssued(ctx context.Context, clientID *string) ([]*domain.IssuedInvoice, error)

	// WhatsAppLink opens a chat with the client holding the invoice summary
	WhatsAppLink(ctx context.Context, number string) (string, error)

	// EmailLink drafts an invoice email for the client
	EmailLink(ctx context.Context, number string) (string, error)
}

type invoiceService struct {
	clientRepo   repository.ClientRepository
	agencyRepo   repository.AgencyRepository
	sequenceRepo repository.SequenceRepository
	invoiceRepo  repository.InvoiceRepository
	drafter      Drafter
	outputDir    string
	template     invoice.Template
	log          zerolog.Logger
}

// InvoiceOptions are the file and layout defaults of the invoice service
type InvoiceOptions struct {
	OutputDir       string
	DefaultTemplate invoice.Template
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	clientRepo repository.ClientRepository,
	agencyRepo repository.AgencyRepository,
	sequenceRepo repository.SequenceRepository,
	invoiceRepo repository.InvoiceRepository,
	drafter Drafter,
	opts InvoiceOptions,
	log zerolog.Logger,
) InvoiceService {
	if opts.DefaultTemplate == "" {
		opts.DefaultTemplate = invoice.TemplateModern
	}
	return &invoiceService{
		clientRepo:   clientRepo,
		agencyRepo:   agencyRepo,
		sequenceRepo: sequenceRepo,
		invoiceRepo:  invoiceRepo,
		drafter:      drafter,
		outputDir:    opts.OutputDir,
		template:     opts.DefaultTemplate,
		log:          log,
	}
}

func (s *invoiceService) StartSession(ctx context.Context, clientRef string, now time.Time) (*invoice.Session, error) {
	client, err := resolveClient(ctx, s.clientRepo, clientRef)
	if err != nil {
		return nil, err
	}

	agency, err := s.agencyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	seq, err := s.sequenceRepo.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice number: %w", err)
	}

	session := invoice.NewSession(client, agency, seq, now)
	session.Template = s.template

	s.log.Debug().Str("number", session.Number).Str("client_id", client.ID).Msg("invoice session started")
	return session, nil
}

func (s *invoiceService) Print(ctx context.Context, session *invoice.Session) (*domain.IssuedInvoice, error) {
	doc, err := invoice.PrintDocument(session)
	if err != nil {
		return nil, fmt.Errorf("failed to print invoice: %w", err)
	}

	issued := &domain.IssuedInvoice{
		InvoiceNumber: session.Number,
		ClientID:      session.Client.ID,
		BusinessName:  session.Client.BusinessName,
		Template:      string(session.Template),
		InvoiceDate:   session.Date,
		HTML:          doc,
	}
	totals := session.Totals()
	issued.Total = totals.Total
	issued.Paid = totals.Paid
	issued.Due = totals.Due

	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create invoice directory: %w", err)
		}
		path := filepath.Join(s.outputDir, session.Number+".html")
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			return nil, fmt.Errorf("failed to write invoice: %w", err)
		}
		issued.FilePath = path
	}

	if err := s.invoiceRepo.Create(ctx, issued); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("number", issued.InvoiceNumber).
		Str("template", issued.Template).
		Float64("total", issued.Total).
		Msg("invoice printed")
	return issued, nil
}

func (s *invoiceService) GetIssued(ctx context.Context, number string) (*domain.IssuedInvoice, error) {
	issued, err := s.invoiceRepo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInvoiceNotFound, number)
		}
		return nil, err
	}
	return issued, nil
}

func (s *invoiceService) ListIssued(ctx context.Context, clientID *string) ([]*domain.IssuedInvoice, error) {
	return s.invoiceRepo.List(ctx, clientID)
}

func (s *invoiceService) WhatsAppLink(ctx context.Context, number string) (string, error) {
	issued, client, agency, err := s.shareContext(ctx, number)
	if err != nil {
		return "", err
	}
	if share.Digits(client.Phone) == "" {
		return "", fmt.Errorf("%w: %s has no phone number", ErrNoContact, client.BusinessName)
	}

	msg := share.InvoiceMessage(
		client.Name,
		issued.InvoiceNumber,
		agency.Name,
		money.FormatINR(issued.Total),
		money.FormatINR(issued.Paid),
		money.FormatINR(issued.Due),
	)
	return share.WhatsAppURL(client.Phone, msg), nil
}

func (s *invoiceService) EmailLink(ctx context.Context, number string) (string, error) {
	issued, client, agency, err := s.shareContext(ctx, number)
	if err != nil {
		return "", err
	}
	if client.Email == "" {
		return "", fmt.Errorf("%w: %s has no email address", ErrNoContact, client.BusinessName)
	}

	body := s.drafter.DraftMessage(ctx, client, assistant.InvoiceEmail, issued.Due)
	return share.MailtoURL(client.Email, share.InvoiceSubject(issued.InvoiceNumber, agency.Name), body), nil
}

func (s *invoiceService) shareContext(ctx context.Context, number string) (*domain.IssuedInvoice, *domain.Client, *domain.AgencyProfile, error) {
	issued, err := s.GetIssued(ctx, number)
	if err != nil {
		return nil, nil, nil, err
	}

	client, err := s.clientRepo.GetByID(ctx, issued.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, nil, fmt.Errorf("%w: %s", ErrClientNotFound, issued.ClientID)
		}
		return nil, nil, nil, err
	}

	agency, err := s.agencyRepo.Get(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return issued, client, agency, nil
}

// resolveClient finds a client by id, then by business name
func resolveClient(ctx context.Context, repo repository.ClientRepository, ref string) (*domain.Client, error) {
	client, err := repo.GetByID(ctx, ref)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	client, err = repo.GetByBusinessName(ctx, ref)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrClientNotFound, ref)
		}
		return nil, err
	}
	return client, nil
}
