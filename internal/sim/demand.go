package sim

import (
	"math"
	"time"

	"storefront-seeder/internal/random"
)

const (
	peakBaseVolume    = 66
	offPeakBaseVolume = 36
	recoveryFloor     = 0.45
	recoveryMonths    = 6
	weekendFactor     = 0.6
	noiseFraction     = 0.2
	growthStart       = 0.6
	growthSpan        = 0.6
	growthMonths      = 36
)

// GrowthMultiplier ramps linearly from 0.6 at month zero to 1.2 at month 36
// and keeps climbing at the same rate afterwards.
func GrowthMultiplier(yearIndex, monthIndex int) float64 {
	months := yearIndex*12 + monthIndex
	return growthStart + float64(months)/growthMonths*growthSpan
}

// IsPeakSeason is true for March through May and for August.
func IsPeakSeason(date time.Time) bool {
	m := date.Month()
	return (m >= time.March && m <= time.May) || m == time.August
}

// MonthsBetween counts calendar month boundaries from start to date.
func MonthsBetween(start, date time.Time) int {
	return (date.Year()-start.Year())*12 + int(date.Month()) - int(start.Month())
}

func isWeekend(date time.Time) bool {
	d := date.Weekday()
	return d == time.Saturday || d == time.Sunday
}

// DemandModel turns a date into a target number of items for the day.
type DemandModel struct {
	Start       time.Time
	RecoveryEnd time.Time
}

// BaseVolume is the target before noise.
func (d DemandModel) BaseVolume(date time.Time, growth float64) int {
	base := float64(offPeakBaseVolume)
	if IsPeakSeason(date) {
		base = peakBaseVolume
	}
	v := math.Round(base * growth)

	if date.Before(d.RecoveryEnd) {
		progress := float64(MonthsBetween(d.Start, date)) / recoveryMonths
		progress = math.Min(1, math.Max(0, progress))
		v = math.Max(1, math.Round(v*(recoveryFloor+(1-recoveryFloor)*progress)))
	}

	if isWeekend(date) {
		v = math.Round(v * weekendFactor)
	}
	return int(v)
}

// TargetVolume applies ±20% uniform noise to BaseVolume, never below 1.
func (d DemandModel) TargetVolume(src *random.Source, date time.Time, growth float64) int {
	base := float64(d.BaseVolume(date, growth))
	variance := base * noiseFraction
	v := math.Round(base + (src.Float64()-0.5)*variance*2)
	if v < 1 {
		return 1
	}
	return int(v)
}
