package analyses

import (
	"encoding/json"
	"fmt"
	"math"

	"triage-backend/internal/triage"
)

// AnalyzeRequest is the POST /analyze body.
type AnalyzeRequest struct {
	Complaint        string         `json:"complaint"`
	Age              *int           `json:"age"`
	Vitals           map[string]any `json:"vitals"`
	SelectedSymptoms []string       `json:"selected_symptoms"`
}

// AnalyzeResponse is the flat verdict returned to clients.
type AnalyzeResponse struct {
	Priority          string   `json:"priority"`
	PriorityLabel     string   `json:"priority_label"`
	Confidence        float64  `json:"confidence"`
	DetectedSymptoms  []string `json:"detected_symptoms"`
	Reasoning         string   `json:"reasoning"`
	SuggestedSymptoms []string `json:"suggested_symptoms"`
}

func toAnalyzeResponse(res triage.Result) AnalyzeResponse {
	return AnalyzeResponse{
		Priority:          string(res.Priority),
		PriorityLabel:     res.PriorityLabel,
		Confidence:        res.Confidence,
		DetectedSymptoms:  nonNil(res.DetectedSymptoms),
		Reasoning:         res.Reasoning,
		SuggestedSymptoms: nonNil(res.SuggestedSymptoms),
	}
}

// ToInput converts the request into scorer input. Vitals that are present
// but not numeric fail with triage.ErrInternal.
func (r AnalyzeRequest) ToInput() (triage.Input, error) {
	vitals, err := VitalsFromMap(r.Vitals)
	if err != nil {
		return triage.Input{}, err
	}
	return triage.Input{
		Complaint:        r.Complaint,
		Age:              r.Age,
		Vitals:           vitals,
		SelectedSymptoms: r.SelectedSymptoms,
	}, nil
}

// VitalsFromMap reads pulse and temperature from a loose JSON mapping.
// Other keys (blood pressure, notes) are ignored; null means not recorded.
func VitalsFromMap(raw map[string]any) (*triage.Vitals, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	pulse, err := numericVital(raw, "pulse")
	if err != nil {
		return nil, err
	}
	temperature, err := numericVital(raw, "temperature")
	if err != nil {
		return nil, err
	}
	return &triage.Vitals{Pulse: pulse, Temperature: temperature}, nil
}

func numericVital(raw map[string]any, key string) (*float64, error) {
	val, ok := raw[key]
	if !ok || val == nil {
		return nil, nil
	}
	var f float64
	switch v := val.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: vitals.%s must be numeric: %v", triage.ErrInternal, key, err)
		}
		f = parsed
	default:
		return nil, fmt.Errorf("%w: vitals.%s must be numeric, got %T", triage.ErrInternal, key, val)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: vitals.%s must be finite", triage.ErrInternal, key)
	}
	return &f, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
