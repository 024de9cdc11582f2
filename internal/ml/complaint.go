package ml

import (
	"strings"

	"hostel-management-backend/internal/model"
)

// complaintArtifact is the serialized complaint classifier: per-category
// term weights, plus the keyword tiers that decide priority.
type complaintArtifact struct {
	Categories       map[string]map[string]float64 `json:"categories"`
	PriorityKeywords map[string][]string           `json:"priority_keywords"`
}

// ComplaintModel assigns a category and priority to complaint text.
type ComplaintModel struct {
	artifact complaintArtifact
}

// Classification is the result of classifying one complaint.
type Classification struct {
	Category model.ComplaintCategory `json:"category"`
	Priority model.ComplaintPriority `json:"priority"`
}

// LoadComplaintModel loads the complaint classifier artifact from path.
func LoadComplaintModel(path string) (*ComplaintModel, error) {
	var art complaintArtifact
	if err := loadArtifact(path, &art); err != nil {
		return nil, err
	}
	if art.PriorityKeywords == nil {
		art.PriorityKeywords = defaultPriorityKeywords
	}
	return &ComplaintModel{artifact: art}, nil
}

// Classify scores title+description against every category's term weights
// and picks the highest. Priority comes from keyword tiers: any high-tier
// keyword wins, then medium, otherwise low.
func (m *ComplaintModel) Classify(title, description string) (Classification, error) {
	text := strings.TrimSpace(title + " " + description)
	if text == "" {
		return Classification{}, ErrEmptyInput
	}

	tokens := tokenize(text)

	best := model.CategoryOther
	bestScore := 0.0
	for name, weights := range m.artifact.Categories {
		score := 0.0
		for _, tok := range tokens {
			score += weights[tok]
		}
		if score > bestScore {
			bestScore = score
			best = model.ComplaintCategory(name)
		}
	}

	return Classification{
		Category: best,
		Priority: priorityFor(strings.ToLower(text), m.artifact.PriorityKeywords),
	}, nil
}

var defaultPriorityKeywords = map[string][]string{
	"high":   {"emergency", "urgent", "danger", "fire", "flood", "electrocution", "gas"},
	"medium": {"leak", "broken", "not working", "issue", "problem"},
}

func priorityFor(lowerText string, tiers map[string][]string) model.ComplaintPriority {
	for _, kw := range tiers["high"] {
		if strings.Contains(lowerText, kw) {
			return model.PriorityHigh
		}
	}
	for _, kw := range tiers["medium"] {
		if strings.Contains(lowerText, kw) {
			return model.PriorityMedium
		}
	}
	return model.PriorityLow
}

// categoryLexicon backs the degraded path when no artifact could be loaded.
var categoryLexicon = []struct {
	category model.ComplaintCategory
	words    []string
}{
	{model.CategoryInternet, []string{"wifi", "internet", "network", "connection"}},
	{model.CategoryCleaning, []string{"clean", "dirty", "dust", "garbage", "sweep", "mop"}},
	{model.CategoryPlumbing, []string{"water", "tap", "toilet", "drain", "pipe", "bathroom"}},
	{model.CategoryFurniture, []string{"bed", "chair", "table", "furniture", "cupboard"}},
	{model.CategoryElectrical, []string{"light", "fan", "switch", "electrical", "power", "socket"}},
}

// fallbackClassification is simple keyword matching, used when the model
// artifact is unavailable so complaint submission keeps working.
func fallbackClassification(title, description string) (Classification, error) {
	text := strings.TrimSpace(title + " " + description)
	if text == "" {
		return Classification{}, ErrEmptyInput
	}

	lower := strings.ToLower(text)
	category := model.CategoryOther
	for _, entry := range categoryLexicon {
		for _, w := range entry.words {
			if strings.Contains(lower, w) {
				category = entry.category
				break
			}
		}
		if category != model.CategoryOther {
			break
		}
	}

	return Classification{
		Category: category,
		Priority: priorityFor(lower, defaultPriorityKeywords),
	}, nil
}
