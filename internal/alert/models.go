// Package alert provides threshold-triggered notices with a validity
// window, and the queries the dashboard uses to list them.
package alert

import (
	"errors"
	"time"
)

// Alert errors.
var (
	ErrNotFound = errors.New("alert not found")
)

// Type identifies the environmental domain an alert belongs to.
type Type string

const (
	TypeHeatwave     Type = "heatwave"
	TypeFlood        Type = "flood"
	TypeAirQuality   Type = "air_quality"
	TypeWaterQuality Type = "water_quality"
)

// Severity is the ordinal alert severity.
type Severity string

const (
	SeverityInfo      Severity = "info"
	SeverityWarning   Severity = "warning"
	SeverityCritical  Severity = "critical"
	SeverityEmergency Severity = "emergency"
)

// Rank orders severities from least to most severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityCritical:
		return 2
	case SeverityEmergency:
		return 3
	default:
		return -1
	}
}

// Alert is a persisted, time-bounded notice.
type Alert struct {
	ID         string             `json:"id"`
	Type       Type               `json:"type"`
	Severity   Severity           `json:"severity"`
	Title      string             `json:"title"`
	Message    string             `json:"message"`
	City       string             `json:"city"`
	State      string             `json:"state"`
	ValidFrom  time.Time          `json:"validFrom"`
	ValidUntil *time.Time         `json:"validUntil,omitempty"`
	IsActive   bool               `json:"isActive"`
	IssuedBy   string             `json:"issuedBy"`
	Metadata   map[string]float64 `json:"metadata,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// ActiveAt reports whether the alert is active at the given instant:
// the active flag is set and the validity window has not closed. A nil
// ValidUntil means the alert does not expire. This is the single active
// predicate; every listing applies it identically.
func (a *Alert) ActiveAt(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	return a.ValidUntil == nil || a.ValidUntil.After(now)
}

// Filter narrows active-alert queries.
type Filter struct {
	Type     Type
	Severity Severity
}

// Page is a pagination request for alert history.
type Page struct {
	Limit int
	Skip  int
}

// HistoryResult is a page of historical alerts.
type HistoryResult struct {
	Alerts  []*Alert
	Total   int
	HasMore bool
}
