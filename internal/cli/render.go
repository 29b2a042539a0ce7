package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"triage-backend/internal/triage"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// scoreReport is the CLI view of a verdict; it carries the diagnostic fields
// the HTTP response leaves out.
type scoreReport struct {
	Priority          triage.Priority `json:"priority" yaml:"priority"`
	PriorityLabel     string          `json:"priority_label" yaml:"priority_label"`
	Confidence        float64         `json:"confidence" yaml:"confidence"`
	Score             int             `json:"score" yaml:"score"`
	DetectedSymptoms  []string        `json:"detected_symptoms" yaml:"detected_symptoms"`
	DetectedKeywords  []string        `json:"detected_keywords" yaml:"detected_keywords"`
	Reasoning         string          `json:"reasoning" yaml:"reasoning"`
	SuggestedSymptoms []string        `json:"suggested_symptoms" yaml:"suggested_symptoms"`
}

func newScoreReport(res triage.Result) scoreReport {
	return scoreReport{
		Priority:          res.Priority,
		PriorityLabel:     res.PriorityLabel,
		Confidence:        res.Confidence,
		Score:             res.Score,
		DetectedSymptoms:  res.DetectedSymptoms,
		DetectedKeywords:  res.DetectedKeywords,
		Reasoning:         res.Reasoning,
		SuggestedSymptoms: res.SuggestedSymptoms,
	}
}

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeReportText(w io.Writer, r scoreReport) error {
	lines := []string{
		fmt.Sprintf("Priority:   %s (%s)", r.PriorityLabel, r.Priority),
		fmt.Sprintf("Confidence: %.2f", r.Confidence),
		fmt.Sprintf("Score:      %d", r.Score),
		"Detected:   " + listOrNone(r.DetectedSymptoms),
		"Keywords:   " + listOrNone(r.DetectedKeywords),
		"Reasoning:  " + r.Reasoning,
		"Suggested:  " + listOrNone(r.SuggestedSymptoms),
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
