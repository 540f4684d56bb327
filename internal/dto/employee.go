package dto

import "github.com/monikajha100/prime-admin-gateway/internal/models"

// PunchRequest is the punch-in/punch-out payload. Photo is a data URL
// captured from the device camera; the gateway archives it before
// forwarding the punch upstream.
type PunchRequest struct {
	Photo            string              `json:"photo" binding:"required"`
	Location         *models.GeoLocation `json:"location"`
	FingerprintToken string              `json:"fingerprint_token"`
}

// BreakRequest starts or ends a break on today's punch record.
type BreakRequest struct {
	Reason string `json:"reason"`
}

// DailyLogQuery selects the month for an employee's daily log.
type DailyLogQuery struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000"`
}
