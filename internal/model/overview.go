package model

// Overview holds the figures behind a multi-day overview. Temperatures are Celsius.
type Overview struct {
	Days         int
	LowestC      float64
	LowestDate   string // formatted
	HighestC     float64
	HighestDate  string // formatted
	AverageLowC  float64
	AverageHighC float64
}
