package ml

import (
	"log"
	"path/filepath"
	"time"

	"hostel-management-backend/config"
)

// Engine bundles the three inference adapters behind a fail-closed facade.
// A missing or unloadable artifact is logged once at startup; from then on
// the affected adapter answers with its degraded fallback instead of
// failing requests, since ML output enriches records rather than gating them.
type Engine struct {
	sentiment *SentimentModel
	occupancy *OccupancyModel
	complaint *ComplaintModel
}

// LoadEngine loads all artifacts named in cfg. It never returns an error:
// adapters whose artifact cannot be loaded are left nil and fall back.
func LoadEngine(cfg *config.ModelsConfig) *Engine {
	e := &Engine{}

	var err error
	if e.sentiment, err = LoadSentimentModel(filepath.Join(cfg.Dir, cfg.SentimentFile)); err != nil {
		log.Printf("Warning: sentiment model unavailable, using keyword fallback: %v", err)
	}
	if e.occupancy, err = LoadOccupancyModel(filepath.Join(cfg.Dir, cfg.OccupancyFile)); err != nil {
		log.Printf("Warning: occupancy model unavailable, forecasts degrade to latest snapshot: %v", err)
	}
	if e.complaint, err = LoadComplaintModel(filepath.Join(cfg.Dir, cfg.ComplaintFile)); err != nil {
		log.Printf("Warning: complaint classifier unavailable, using keyword fallback: %v", err)
	}

	return e
}

// AnalyzeSentiment labels feedback text. Empty text is an error; an
// unavailable model is not.
func (e *Engine) AnalyzeSentiment(text string) (Sentiment, error) {
	if e.sentiment == nil {
		return fallbackSentiment(text)
	}
	return e.sentiment.Analyze(text)
}

// ClassifyComplaint assigns category and priority to complaint text.
func (e *Engine) ClassifyComplaint(title, description string) (Classification, error) {
	if e.complaint == nil {
		return fallbackClassification(title, description)
	}
	return e.complaint.Classify(title, description)
}

// PredictOccupancy forecasts the occupancy rate for date. ok is false when
// the model is unavailable and the caller should fall back to the latest
// recorded snapshot.
func (e *Engine) PredictOccupancy(date time.Time) (rate float64, ok bool) {
	if e.occupancy == nil {
		return 0, false
	}
	return e.occupancy.Predict(date), true
}

// OccupancyTrend forecasts a daily series of the given length. ok is false
// when the model is unavailable.
func (e *Engine) OccupancyTrend(from time.Time, days int) ([]TrendPoint, bool) {
	if e.occupancy == nil {
		return nil, false
	}
	return e.occupancy.Trend(from, days), true
}

// Status reports which adapters are backed by a loaded artifact.
func (e *Engine) Status() map[string]bool {
	return map[string]bool{
		"sentiment_analyzer":   e.sentiment != nil,
		"occupancy_predictor":  e.occupancy != nil,
		"complaint_classifier": e.complaint != nil,
	}
}
