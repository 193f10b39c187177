package model

// WeatherRecord is one day of source data. Temperatures are whole degrees Fahrenheit.
type WeatherRecord struct {
	Date  string // ISO-8601, kept verbatim from the source
	LowF  int
	HighF int
}

// Dataset holds records in source order.
type Dataset []WeatherRecord

// Lows returns the daily low temperatures in order.
func (d Dataset) Lows() []int {
	lows := make([]int, len(d))
	for i, r := range d {
		lows[i] = r.LowF
	}
	return lows
}

// Highs returns the daily high temperatures in order.
func (d Dataset) Highs() []int {
	highs := make([]int, len(d))
	for i, r := range d {
		highs[i] = r.HighF
	}
	return highs
}
