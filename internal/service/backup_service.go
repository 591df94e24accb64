package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/repository"
)

var ErrEmptyBackup = errors.New("backup holds no agency records")

// BackupService moves the stored records in and out as one JSON document
type BackupService interface {
	// Export writes every stored record keyed by its record name
	Export(ctx context.Context, w io.Writer) error

	// Import validates every known record in r, then replaces the stored
	// ones. Values may be JSON documents or JSON-encoded strings holding one.
	Import(ctx context.Context, r io.Reader) ([]string, error)

	// Reset deletes all records and the issued invoice log
	Reset(ctx context.Context) error
}

type backupService struct {
	records     repository.RecordRepository
	invoiceRepo repository.InvoiceRepository
	log         zerolog.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(records repository.RecordRepository, invoiceRepo repository.InvoiceRepository, log zerolog.Logger) BackupService {
	return &backupService{
		records:     records,
		invoiceRepo: invoiceRepo,
		log:         log,
	}
}

func (s *backupService) Export(ctx context.Context, w io.Writer) error {
	doc := make(map[string]json.RawMessage, len(repository.RecordKeys))
	for _, key := range repository.RecordKeys {
		value, found, err := s.records.Get(ctx, key)
		if err != nil {
			return err
		}
		if !found {
			continue
		}

		if json.Valid([]byte(value)) {
			doc[key] = json.RawMessage(value)
			continue
		}
		quoted, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		doc[key] = quoted
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

func (s *backupService) Import(ctx context.Context, r io.Reader) ([]string, error) {
	var doc map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}

	values := make(map[string]string)
	var restored []string
	for _, key := range repository.RecordKeys {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		value, err := recordValue(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		if err := checkRecord(key, value); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		values[key] = value
		restored = append(restored, key)
	}
	if len(restored) == 0 {
		return nil, ErrEmptyBackup
	}

	for _, key := range restored {
		if err := s.records.Put(ctx, key, values[key]); err != nil {
			return nil, err
		}
	}

	s.log.Info().Strs("keys", restored).Msg("backup imported")
	return restored, nil
}

func (s *backupService) Reset(ctx context.Context) error {
	for _, key := range repository.RecordKeys {
		if err := s.records.Delete(ctx, key); err != nil {
			return err
		}
	}
	if err := s.invoiceRepo.DeleteAll(ctx); err != nil {
		return err
	}
	s.log.Warn().Msg("all records deleted")
	return nil
}

// recordValue unwraps a JSON string into the document it holds and compacts
// anything else
func recordValue(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// checkRecord decodes value as the type stored under key
func checkRecord(key, value string) error {
	var target any
	switch key {
	case repository.KeyClients:
		target = &[]domain.Client{}
	case repository.KeyServices:
		target = &[]domain.ServiceDefinition{}
	case repository.KeyExpenses:
		target = &[]domain.Expense{}
	case repository.KeyProfile:
		target = &domain.AgencyProfile{}
	case repository.KeyInvoiceSeq:
		if _, err := strconv.Atoi(strings.Trim(strings.TrimSpace(value), `"`)); err != nil {
			return fmt.Errorf("counter must be a whole number")
		}
		return nil
	default:
		return nil
	}
	return json.Unmarshal([]byte(value), target)
}
