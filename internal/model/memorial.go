// Package model holds the memorial entity and the payloads exchanged over HTTP.
package model

import (
	"strings"
	"time"
)

// DateLayout is the canonical wire and storage form of birth and death dates.
const DateLayout = "2006-01-02"

// Status is the approval workflow flag of a memorial.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved
}

// Memorial is a profile record of a deceased person.
//
// BirthDate and DeathDate are YYYY-MM-DD strings. QRCodeURL is nil for a
// record whose creation was interrupted between the insert and the URL update.
type Memorial struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Bio              string    `json:"bio"`
	BriefInfo        *string   `json:"brief_info"`
	PassportPhotoURL string    `json:"passport_photo_url"`
	BirthDate        *string   `json:"birth_date"`
	DeathDate        *string   `json:"death_date"`
	Status           Status    `json:"status"`
	QRCodeURL        *string   `json:"qr_code_url"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate parses a caller-supplied date in any accepted layout.
// Timestamps carrying a zone are converted to UTC before the date is taken.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

// NormalizeDate returns value as YYYY-MM-DD, or nil when it cannot be parsed.
func NormalizeDate(value string) *string {
	t, ok := ParseDate(value)
	if !ok {
		return nil
	}
	formatted := t.Format(DateLayout)
	return &formatted
}
