package application

import "plotsort/internal/domain"

// Re-export domain types for use by adapters
type (
	Notice    = domain.Notice
	RunRecord = domain.RunRecord
)

const (
	LevelInfo    = domain.LevelInfo
	LevelSuccess = domain.LevelSuccess
	LevelWarning = domain.LevelWarning
	LevelError   = domain.LevelError
)
