package domain

import (
	"strconv"
	"sync/atomic"
	"time"
)

var lastID atomic.Int64

// NewID returns a millisecond timestamp string, bumped when two records are
// created within the same millisecond so ids stay unique per process.
func NewID() string {
	for {
		last := lastID.Load()
		next := time.Now().UnixMilli()
		if next <= last {
			next = last + 1
		}
		if lastID.CompareAndSwap(last, next) {
			return strconv.FormatInt(next, 10)
		}
	}
}
