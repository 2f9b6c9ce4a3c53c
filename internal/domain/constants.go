package domain

// Slot generation window
const (
	DefaultGenerationWindowDays = 30
	MinGenerationWindowDays     = 1
	MaxGenerationWindowDays     = 90
)

// Length of a slot created by upsert without an explicit end time
const DefaultSlotLengthMinutes = 60

// Business validation constants
const (
	MaxFieldNameLength     = 200
	MaxFieldLocationLength = 300
	MaxDescriptionLength   = 2000
	MaxBulkUpsertItems     = 96
	MaxSearchQueryLength   = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
