package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report represents a complete run's rendered output
type Report struct {
	Title         string
	Period        TimePeriod
	Sections      []ReportSection
	TotalDeposits decimal.Decimal
	Currency      string
}

// TimePeriod represents the date range covered by the ingested file
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail represents one line within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
