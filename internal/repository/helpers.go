package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// timeLayout is the RFC3339 format for storing times in SQLite
const timeLayout = time.RFC3339

// parseTime parses a time string in RFC3339 format
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// formatTime returns the current time formatted as RFC3339
func formatTime() string {
	return time.Now().Format(timeLayout)
}

// document is a JSON array stored under one record key
type document[T any] struct {
	records RecordRepository
	key     string
	seed    func() []T // used while the key has never been written
	fix     func(*T)   // fills in absent fields after decoding
}

func (d document[T]) decode(raw string, found bool) ([]T, error) {
	if !found {
		if d.seed == nil {
			return []T{}, nil
		}
		return d.seed(), nil
	}

	var items []T
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", d.key, err)
		}
	}
	if items == nil {
		items = []T{}
	}
	if d.fix != nil {
		for i := range items {
			d.fix(&items[i])
		}
	}
	return items, nil
}

// load returns the current collection
func (d document[T]) load(ctx context.Context) ([]T, error) {
	raw, found, err := d.records.Get(ctx, d.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", d.key, err)
	}
	return d.decode(raw, found)
}

// mutate applies fn to the collection and writes the whole result back
func (d document[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	return d.records.Update(ctx, d.key, func(current string, found bool) (string, error) {
		items, err := d.decode(current, found)
		if err != nil {
			return "", err
		}
		items, err = fn(items)
		if err != nil {
			return "", err
		}
		data, err := json.Marshal(items)
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", d.key, err)
		}
		return string(data), nil
	})
}
