package seeding

import "time"

// HTTP status codes the runner checks for.
const (
	StatusOK = 200
)

// Runner tuning constants.
const (
	SettleDelay          = 500 * time.Millisecond
	PercentageMultiplier = 100.0
)
