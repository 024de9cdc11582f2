package ml

import "time"

// occupancyArtifact is the serialized occupancy regression: an intercept
// plus one weight per calendar feature.
type occupancyArtifact struct {
	Intercept float64            `json:"intercept"`
	Weights   map[string]float64 `json:"weights"`
}

// OccupancyModel forecasts the hostel occupancy rate for a date.
type OccupancyModel struct {
	artifact occupancyArtifact
}

// TrendPoint is one day of an occupancy forecast series.
type TrendPoint struct {
	Date string  `json:"date"`
	Rate float64 `json:"occupancyRate"`
}

// LoadOccupancyModel loads the occupancy artifact from path.
func LoadOccupancyModel(path string) (*OccupancyModel, error) {
	var art occupancyArtifact
	if err := loadArtifact(path, &art); err != nil {
		return nil, err
	}
	return &OccupancyModel{artifact: art}, nil
}

// occupancyFeatures derives the calendar feature vector for a date.
// The feature schema matches what the model was trained on: month,
// weekday, weekend flag, and whether the month falls in an academic term.
func occupancyFeatures(t time.Time) map[string]float64 {
	weekday := int(t.Weekday()+6) % 7 // Monday = 0
	features := map[string]float64{
		"month":   float64(t.Month()),
		"weekday": float64(weekday),
	}
	if weekday >= 5 {
		features["is_weekend"] = 1
	}
	if isAcademicMonth(t.Month()) {
		features["is_academic_month"] = 1
	}
	return features
}

func isAcademicMonth(m time.Month) bool {
	switch m {
	case time.January, time.February, time.March, time.April,
		time.August, time.September, time.October, time.November:
		return true
	}
	return false
}

// Predict returns the forecast occupancy rate for date, clamped to [0, 100].
func (m *OccupancyModel) Predict(date time.Time) float64 {
	rate := m.artifact.Intercept
	for name, value := range occupancyFeatures(date) {
		rate += m.artifact.Weights[name] * value
	}

	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}

// Trend produces a daily forecast series of the given length starting at from.
func (m *OccupancyModel) Trend(from time.Time, days int) []TrendPoint {
	trend := make([]TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		trend = append(trend, TrendPoint{
			Date: date.Format("2006-01-02"),
			Rate: m.Predict(date),
		})
	}
	return trend
}
