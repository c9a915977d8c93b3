package model

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusInReview ReportStatus = "in_review"
	ReportStatusVerified ReportStatus = "verified"
	ReportStatusSolved   ReportStatus = "solved"
	ReportStatusRejected ReportStatus = "rejected"
)

var ReportStatuses = []ReportStatus{
	ReportStatusPending,
	ReportStatusInReview,
	ReportStatusVerified,
	ReportStatusSolved,
	ReportStatusRejected,
}

func ParseReportStatus(raw string) (ReportStatus, bool) {
	status := ReportStatus(raw)
	for _, known := range ReportStatuses {
		if status == known {
			return status, true
		}
	}
	return "", false
}

func (s ReportStatus) Display() string {
	switch s {
	case ReportStatusPending:
		return "Pending"
	case ReportStatusInReview:
		return "In review"
	case ReportStatusVerified:
		return "Verified"
	case ReportStatusSolved:
		return "Solved"
	case ReportStatusRejected:
		return "Rejected"
	default:
		return string(s)
	}
}

type Severity int

const (
	SeverityLow      Severity = 1
	SeverityMedium   Severity = 2
	SeverityHigh     Severity = 3
	SeverityCritical Severity = 4
)

func (s Severity) Display() string {
	switch s {
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	case SeverityCritical:
		return "Critical"
	default:
		return ""
	}
}

type TrashReport struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Latitude    float64
	Longitude   float64
	Image       string
	Description string
	Severity    Severity
	IsRecurring bool
	Status      ReportStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Coordinates satisfies geo.Locatable.
func (r TrashReport) Coordinates() (float64, float64, bool) {
	return r.Latitude, r.Longitude, true
}

type ReportComment struct {
	ID        uuid.UUID
	ReportID  uuid.UUID
	UserID    uuid.UUID
	Content   string
	CreatedAt time.Time
}

type ReportStatusChange struct {
	ID        uuid.UUID
	ReportID  uuid.UUID
	OldStatus ReportStatus
	NewStatus ReportStatus
	ChangedBy uuid.UUID
	CreatedAt time.Time
}

type ReportDetail struct {
	Report   TrashReport
	Comments []ReportComment
}

type NearbyReport struct {
	Report     TrashReport
	DistanceKm float64
}
