package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// SequenceSeed is the counter value before the first invoice
const SequenceSeed = 1000

// SequenceRepo keeps the invoice counter under agency_invoice_seq
type SequenceRepo struct {
	records RecordRepository
}

// NewSequenceRepo creates a new SequenceRepo
func NewSequenceRepo(records RecordRepository) *SequenceRepo {
	return &SequenceRepo{records: records}
}

func parseSequence(raw string, found bool) int {
	if !found {
		return SequenceSeed
	}
	n, err := strconv.Atoi(strings.Trim(strings.TrimSpace(raw), `"`))
	if err != nil {
		return SequenceSeed
	}
	return n
}

// Current returns the last issued sequence number
func (r *SequenceRepo) Current(ctx context.Context) (int, error) {
	raw, found, err := r.records.Get(ctx, KeyInvoiceSeq)
	if err != nil {
		return 0, fmt.Errorf("failed to read invoice sequence: %w", err)
	}
	return parseSequence(raw, found), nil
}

// Next increments the counter, persists it and returns the new value
func (r *SequenceRepo) Next(ctx context.Context) (int, error) {
	var next int
	err := r.records.Update(ctx, KeyInvoiceSeq, func(current string, found bool) (string, error) {
		next = parseSequence(current, found) + 1
		return strconv.Itoa(next), nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to advance invoice sequence: %w", err)
	}
	return next, nil
}
