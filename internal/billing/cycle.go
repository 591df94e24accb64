// Package billing works out monthly renewal dates for active clients.
package billing

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/money"
)

const day = 24 * time.Hour

// Window bounds for the upcoming renewals list, in days relative to now
const (
	OverdueWindow = -5
	AheadWindow   = 7
)

// NextBillingDate returns the billing day of start in the month of now, or in
// the following month when that day is more than a day in the past.
// Days past the end of a month roll over the way time.Date normalises them.
func NextBillingDate(start, now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), start.Day(), 0, 0, 0, 0, now.Location())
	if next.Before(now.Add(-day)) {
		next = time.Date(now.Year(), now.Month()+1, start.Day(), 0, 0, 0, 0, now.Location())
	}
	return next
}

// DaysUntil is the number of started days from now to next, negative when
// next has passed
func DaysUntil(next, now time.Time) int {
	return int(math.Ceil(float64(next.Sub(now)) / float64(day)))
}

// Renewal is a client's next monthly billing date
type Renewal struct {
	Client    *domain.Client
	Next      time.Time
	DaysUntil int
}

// Label is the badge shown next to a renewal
func (r Renewal) Label() string {
	switch {
	case r.DaysUntil == 0:
		return "Due Today"
	case r.DaysUntil < 0:
		return fmt.Sprintf("%d Days Overdue", -r.DaysUntil)
	default:
		return fmt.Sprintf("In %d Days", r.DaysUntil)
	}
}

// Overdue reports whether the billing date has passed
func (r Renewal) Overdue() bool {
	return r.DaysUntil < 0
}

// Upcoming lists active clients whose billing date falls between five days
// ago and a week ahead, soonest first
func Upcoming(clients []*domain.Client, now time.Time) []Renewal {
	var renewals []Renewal
	for _, c := range clients {
		if !c.IsActive() || c.StartDate.IsZero() {
			continue
		}
		next := NextBillingDate(c.StartDate.Time, now)
		days := DaysUntil(next, now)
		if days < OverdueWindow || days > AheadWindow {
			continue
		}
		renewals = append(renewals, Renewal{Client: c, Next: next, DaysUntil: days})
	}
	sort.SliceStable(renewals, func(i, j int) bool {
		return renewals[i].DaysUntil < renewals[j].DaysUntil
	})
	return renewals
}

// DueSoon keeps the renewals due in one or two days
func DueSoon(renewals []Renewal) []Renewal {
	var soon []Renewal
	for _, r := range renewals {
		if r.DaysUntil == 1 || r.DaysUntil == 2 {
			soon = append(soon, r)
		}
	}
	return soon
}

// OwnerAlert is the reminder text the owner sends to themselves
func OwnerAlert(renewals []Renewal) string {
	names := make([]string, len(renewals))
	for i, r := range renewals {
		names[i] = fmt.Sprintf("%s (%s)", r.Client.BusinessName, money.FormatINR(r.Client.DealAmount))
	}

	var b strings.Builder
	b.WriteString("🔔 AgencyFlow Alert: The following payments are due in ~2 days:\n\n")
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\n\nPlease follow up with these clients regarding their monthly renewals.")
	return b.String()
}
