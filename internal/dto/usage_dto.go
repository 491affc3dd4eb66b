package dto

import "time"

type UsageStatusResponse struct {
	Plan     string    `json:"plan"`
	Used     int       `json:"used"`
	Limit    int       `json:"limit"`
	CanStart bool      `json:"can_start"`
	ResetsAt time.Time `json:"resets_at"`
}
