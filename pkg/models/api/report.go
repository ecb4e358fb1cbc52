package api

import "time"

type TimePeriod struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration_days"`
}

type ReportDetail struct {
	Name        string      `json:"name"`
	Value       interface{} `json:"value"`
	Unit        string      `json:"unit,omitempty"`
	Description string      `json:"description,omitempty"`
}

type ReportSection struct {
	Title   string                 `json:"title"`
	Summary map[string]interface{} `json:"summary,omitempty"`
	Details []ReportDetail         `json:"details"`
}

type Report struct {
	Title         string          `json:"title"`
	Period        TimePeriod      `json:"period"`
	Sections      []ReportSection `json:"sections"`
	TotalDeposits string          `json:"total_deposits"`
	Currency      string          `json:"currency"`
}

type PlayerSummary struct {
	Player       string     `json:"player"`
	Community    string     `json:"community"`
	TotalAmount  string     `json:"total_amount"`
	DepositCount int        `json:"deposit_count"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
	DaysInactive int        `json:"days_inactive"`
	DominantBand string     `json:"dominant_band"`
	PeakHour     int        `json:"peak_hour"`
	BonusLabel   string     `json:"bonus_label"`
	Tier         string     `json:"tier"`
}

type RunResponse struct {
	Report    Report          `json:"report"`
	Summaries []PlayerSummary `json:"summaries"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
