package app

import (
	"context"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/andy/agencyflow/internal/assistant"
	"github.com/andy/agencyflow/internal/config"
	"github.com/andy/agencyflow/internal/crypto"
	"github.com/andy/agencyflow/internal/db"
	"github.com/andy/agencyflow/internal/invoice"
	"github.com/andy/agencyflow/internal/logger"
	"github.com/andy/agencyflow/internal/repository"
	"github.com/andy/agencyflow/internal/service"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB

	// Repositories
	Records      repository.RecordRepository
	ClientRepo   repository.ClientRepository
	ServiceRepo  repository.ServiceRepository
	ExpenseRepo  repository.ExpenseRepository
	AgencyRepo   repository.AgencyRepository
	SequenceRepo repository.SequenceRepository
	InvoiceRepo  repository.InvoiceRepository

	// Services
	ClientService   service.ClientService
	CatalogService  service.CatalogService
	ExpenseService  service.ExpenseService
	AgencyService   service.AgencyService
	InvoiceService  service.InvoiceService
	ReportService   service.ReportService
	ReminderService service.ReminderService
	BackupService   service.BackupService

	Assistant *assistant.Assistant
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Getting encryption key from keyring
// 3. Opening database
// 4. Running migrations
// 5. Creating repositories
// 6. Creating services
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	log := logger.WithComponent("app")

	// Get keyring for secure password storage
	keyring := crypto.NewKeyring()

	password, err := keyring.GetKey()
	if err != nil {
		// No key exists, prompt user to set one
		fmt.Println("Setting up database encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		if err := keyring.SetKey(password); err != nil {
			// Keep going with the typed password for this run
			log.Warn().Err(err).Msg("encryption key not stored")
			fmt.Printf("Note: %v\n\n", err)
		}
	}

	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create repositories
	records := repository.NewRecordRepo(database)
	clientRepo := repository.NewClientRepo(records)
	serviceRepo := repository.NewServiceRepo(records)
	expenseRepo := repository.NewExpenseRepo(records)
	agencyRepo := repository.NewAgencyRepo(records)
	sequenceRepo := repository.NewSequenceRepo(records)
	invoiceRepo := repository.NewInvoiceRepo(database)

	generator := assistant.NewOpenAIGenerator(assistant.Config{
		APIKey:  cfg.APIKey(),
		BaseURL: cfg.Assistant.BaseURL,
		Model:   cfg.Assistant.Model,
		Timeout: cfg.Assistant.Timeout,
	})
	ai := assistant.New(generator, cfg.Assistant.Timeout, logger.WithComponent("assistant"))

	defaultTemplate, err := invoice.ParseTemplate(cfg.Invoice.DefaultTemplate)
	if err != nil {
		log.Warn().Str("template", cfg.Invoice.DefaultTemplate).Msg("unknown default invoice template, using MODERN")
		defaultTemplate = invoice.TemplateModern
	}

	// Create services with their dependencies
	clientService := service.NewClientService(clientRepo, serviceRepo, logger.WithComponent("clients"))
	catalogService := service.NewCatalogService(serviceRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	agencyService := service.NewAgencyService(agencyRepo)
	invoiceService := service.NewInvoiceService(
		clientRepo, agencyRepo, sequenceRepo, invoiceRepo, ai,
		service.InvoiceOptions{OutputDir: cfg.Invoice.OutputDir, DefaultTemplate: defaultTemplate},
		logger.WithComponent("invoices"),
	)
	reportService := service.NewReportService(clientRepo, expenseRepo, cfg.Export.OutputDir, logger.WithComponent("reports"))
	reminderService := service.NewReminderService(clientRepo, agencyRepo)
	backupService := service.NewBackupService(records, invoiceRepo, logger.WithComponent("backup"))

	return &App{
		Config:          cfg,
		DB:              database,
		Records:         records,
		ClientRepo:      clientRepo,
		ServiceRepo:     serviceRepo,
		ExpenseRepo:     expenseRepo,
		AgencyRepo:      agencyRepo,
		SequenceRepo:    sequenceRepo,
		InvoiceRepo:     invoiceRepo,
		ClientService:   clientService,
		CatalogService:  catalogService,
		ExpenseService:  expenseService,
		AgencyService:   agencyService,
		InvoiceService:  invoiceService,
		ReportService:   reportService,
		ReminderService: reminderService,
		BackupService:   backupService,
		Assistant:       ai,
	}, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// NewReminderWatcher schedules reminder checks with the configured cron expression
func (a *App) NewReminderWatcher() *service.ReminderWatcher {
	return service.NewReminderWatcher(a.ReminderService, a.Config.Reminders.Schedule, logger.WithComponent("reminders"))
}

// promptForPassword prompts user for a new database password (first run)
// This should be called when keyring has no stored key
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your agency records will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	// Read password securely (no echo)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
