package ml

import (
	"math"
	"strings"

	"hostel-management-backend/internal/model"
)

// sentimentArtifact is the serialized form of the sentiment model:
// log-odds style term weights plus the thresholds separating the labels.
type sentimentArtifact struct {
	Weights           map[string]float64 `json:"weights"`
	Bias              float64            `json:"bias"`
	PositiveThreshold float64            `json:"positive_threshold"`
	NegativeThreshold float64            `json:"negative_threshold"`
}

// SentimentModel scores free-form feedback text.
type SentimentModel struct {
	artifact sentimentArtifact
}

// Sentiment is the result of analyzing one piece of text.
type Sentiment struct {
	Label model.SentimentLabel `json:"label"`
	Score float64              `json:"score"` // polarity in [-1, 1]
}

// LoadSentimentModel loads the sentiment artifact from path.
func LoadSentimentModel(path string) (*SentimentModel, error) {
	var art sentimentArtifact
	if err := loadArtifact(path, &art); err != nil {
		return nil, err
	}
	if art.PositiveThreshold == 0 && art.NegativeThreshold == 0 {
		art.PositiveThreshold = 0.1
		art.NegativeThreshold = -0.1
	}
	return &SentimentModel{artifact: art}, nil
}

// Analyze returns the sentiment label and polarity score for text.
// Blank text is an input error, never a neutral result.
func (m *SentimentModel) Analyze(text string) (Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return Sentiment{}, ErrEmptyInput
	}

	tokens := tokenize(text)
	sum := m.artifact.Bias
	for _, tok := range tokens {
		sum += m.artifact.Weights[tok]
	}

	// Squash the raw sum so the score stays comparable across text lengths.
	score := math.Tanh(sum)

	label := model.SentimentNeutral
	switch {
	case score > m.artifact.PositiveThreshold:
		label = model.SentimentPositive
	case score < m.artifact.NegativeThreshold:
		label = model.SentimentNegative
	}

	return Sentiment{Label: label, Score: score}, nil
}

// Keyword lexicons for the degraded path when no artifact could be loaded.
var (
	positiveLexicon = []string{
		"good", "excellent", "happy", "satisfied", "great", "nice",
		"comfortable", "clean", "friendly", "helpful",
	}
	negativeLexicon = []string{
		"bad", "poor", "terrible", "unhappy", "dissatisfied", "dirty",
		"broken", "issue", "problem", "worst",
	}
)

// fallbackSentiment is keyword counting over fixed lexicons. It is used
// when the model artifact is unavailable, so feedback submission keeps
// working with a coarser label.
func fallbackSentiment(text string) (Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return Sentiment{}, ErrEmptyInput
	}

	lower := strings.ToLower(text)
	var positive, negative int
	for _, w := range positiveLexicon {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	for _, w := range negativeLexicon {
		if strings.Contains(lower, w) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return Sentiment{Label: model.SentimentPositive, Score: 0.5}, nil
	case negative > positive:
		return Sentiment{Label: model.SentimentNegative, Score: -0.5}, nil
	default:
		return Sentiment{Label: model.SentimentNeutral, Score: 0}, nil
	}
}
