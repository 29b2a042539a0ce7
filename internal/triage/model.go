package triage

// Priority is the triage colour bucket.
type Priority string

const (
	PriorityRed    Priority = "red"
	PriorityYellow Priority = "yellow"
	PriorityGreen  Priority = "green"
)

// Label returns the human label for the bucket.
func (p Priority) Label() string {
	switch p {
	case PriorityRed:
		return "CRITICAL"
	case PriorityYellow:
		return "URGENT"
	default:
		return "NON-URGENT"
	}
}

// Vitals holds the optional vital signs. A nil or zero value means the
// reading was not recorded.
type Vitals struct {
	Pulse       *float64 `json:"pulse,omitempty" yaml:"pulse,omitempty"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

// Input is a single scoring request.
type Input struct {
	Complaint        string
	Age              *int
	Vitals           *Vitals
	SelectedSymptoms []string
}

// Result is the scorer verdict.
type Result struct {
	Priority          Priority `json:"priority" yaml:"priority"`
	PriorityLabel     string   `json:"priority_label" yaml:"priority_label"`
	Confidence        float64  `json:"confidence" yaml:"confidence"`
	DetectedSymptoms  []string `json:"detected_symptoms" yaml:"detected_symptoms"`
	Reasoning         string   `json:"reasoning" yaml:"reasoning"`
	SuggestedSymptoms []string `json:"suggested_symptoms" yaml:"suggested_symptoms"`

	// Diagnostic fields, not part of the HTTP contract.
	Score            int      `json:"-" yaml:"score"`
	DetectedKeywords []string `json:"-" yaml:"detected_keywords"`
}
