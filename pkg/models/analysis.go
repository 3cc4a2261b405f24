package models

// Importance is the missing-data tier of a field
type Importance string

const (
	ImportanceCritical    Importance = "critical"
	ImportanceRecommended Importance = "recommended"
	ImportanceOptional    Importance = "optional"
)

// Impact maps a tier to the suggestion impact it produces
func (i Importance) Impact() Priority {
	switch i {
	case ImportanceCritical:
		return PriorityHigh
	case ImportanceRecommended:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// MissingField is one absent or thin field
type MissingField struct {
	Field         string     `json:"field"`
	Category      string     `json:"category"`
	Importance    Importance `json:"importance"`
	Reason        string     `json:"reason"`
	Example       string     `json:"example,omitempty"`
	ImpactOnScore int        `json:"impactOnScore"`
}

// Difficulty of a priority action
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// PriorityAction is a ranked, grouped remediation step
type PriorityAction struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	EstimatedTime string     `json:"estimatedTime"`
	ImpactScore   int        `json:"impactScore"`
	Difficulty    Difficulty `json:"difficulty"`
	Category      string     `json:"category"`
	Fields        []string   `json:"fields"`
}

// MissingDataAnalysis buckets gaps by tier
type MissingDataAnalysis struct {
	Critical        []MissingField   `json:"critical"`
	Recommended     []MissingField   `json:"recommended"`
	Optional        []MissingField   `json:"optional"`
	OverallScore    int              `json:"overallScore"`
	PriorityActions []PriorityAction `json:"priorityActions"`
}

// All returns every missing field, critical first
func (a MissingDataAnalysis) All() []MissingField {
	all := make([]MissingField, 0, len(a.Critical)+len(a.Recommended)+len(a.Optional))
	all = append(all, a.Critical...)
	all = append(all, a.Recommended...)
	return append(all, a.Optional...)
}

// Find returns the missing field entry for a path
func (a MissingDataAnalysis) Find(field string) (MissingField, bool) {
	for _, f := range a.All() {
		if f.Field == field {
			return f, true
		}
	}
	return MissingField{}, false
}

// MissingDataScore applies the tier penalty: 10 per critical, 5 per recommended, 1 per optional
func MissingDataScore(critical, recommended, optional int) int {
	penalty := 10*critical + 5*recommended + optional
	if penalty > 100 {
		penalty = 100
	}
	score := 100 - penalty
	if score < 0 {
		score = 0
	}
	return score
}
