// Package report provides citizen-submitted incident reports and their
// verification lifecycle.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Report errors.
var (
	ErrNotFound          = errors.New("report not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Type classifies what a citizen is reporting.
type Type string

const (
	TypeWaterlogging       Type = "waterlogging"
	TypePollution          Type = "pollution"
	TypeWaterContamination Type = "water_contamination"
	TypeHeatEmergency      Type = "heat_emergency"
	TypeOther              Type = "other"
)

// Valid reports whether t is a known report type.
func (t Type) Valid() bool {
	switch t {
	case TypeWaterlogging, TypePollution, TypeWaterContamination, TypeHeatEmergency, TypeOther:
		return true
	}
	return false
}

// Severity is the reporter's assessment of urgency.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Status tracks a report through review.
type Status string

const (
	StatusPending    Status = "pending"
	StatusVerified   Status = "verified"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

// transitions maps each status to the statuses it may move to.
var transitions = map[Status][]Status{
	StatusPending:    {StatusVerified, StatusRejected},
	StatusVerified:   {StatusInProgress, StatusResolved, StatusRejected},
	StatusInProgress: {StatusResolved, StatusRejected},
	StatusResolved:   {},
	StatusRejected:   {},
}

// CanTransition reports whether a report may move from its current
// status to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Report is a citizen-submitted incident.
type Report struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Type        Type      `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	State       string    `json:"state,omitempty"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Severity    Severity  `json:"severity"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Input is the payload for submitting a report.
type Input struct {
	Type        Type     `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Severity    Severity `json:"severity"`
}

// Validate checks required fields and enum membership. An empty
// severity defaults to medium.
func (in *Input) Validate() error {
	if !in.Type.Valid() {
		return fmt.Errorf("unknown report type %q", in.Type)
	}
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if strings.TrimSpace(in.City) == "" {
		return fmt.Errorf("city is required")
	}
	if in.Severity == "" {
		in.Severity = SeverityMedium
	}
	if !in.Severity.Valid() {
		return fmt.Errorf("unknown severity %q", in.Severity)
	}
	return nil
}

// Filter narrows report listings.
type Filter struct {
	Type   Type
	Status Status
	Limit  int
	Offset int
}

// ListResult is one page of reports with the unpaged total.
type ListResult struct {
	Reports []*Report `json:"reports"`
	Total   int       `json:"total"`
	Limit   int       `json:"limit"`
	Offset  int       `json:"offset"`
}
