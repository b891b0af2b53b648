package service

import "time"

const (
	DefaultCacheTTL = 24 * time.Hour

	emiKeyPrefix      = "emi"
	scheduleKeyPrefix = "schedule"

	// Tenure recommendation limits.
	MaxTenureCandidates = 600 // 50 years of monthly payments
	maxAlternatives     = 3
)
