package model

// DuplicationLevel grades a duplication rate for report highlighting.
type DuplicationLevel int

const (
	// LevelNone means no duplicates.
	LevelNone DuplicationLevel = iota

	// LevelLow means less than 10% of records are duplicated.
	LevelLow

	// LevelModerate means 10% to less than 30%.
	LevelModerate

	// LevelHigh means 30% to less than 60%.
	LevelHigh

	// LevelSevere means 60% or more.
	LevelSevere
)

// String returns a human-readable representation of the level.
func (l DuplicationLevel) String() string {
	switch l {
	case LevelNone:
		return "NONE"
	case LevelLow:
		return "LOW"
	case LevelModerate:
		return "MODERATE"
	case LevelHigh:
		return "HIGH"
	case LevelSevere:
		return "SEVERE"
	default:
		return "UNKNOWN"
	}
}

// LevelForRate returns the level of a duplication rate in percent.
func LevelForRate(rate float64) DuplicationLevel {
	switch {
	case rate <= 0:
		return LevelNone
	case rate < 10:
		return LevelLow
	case rate < 30:
		return LevelModerate
	case rate < 60:
		return LevelHigh
	default:
		return LevelSevere
	}
}

// Rate returns the share of duplicate records in percent.
func (s FieldStats) Rate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.DuplicateRecords) / float64(s.Total) * 100
}

// Level returns the duplication level of the field.
func (s FieldStats) Level() DuplicationLevel {
	return LevelForRate(s.Rate())
}
