package triage

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	criticalThreshold   = 10
	urgentThreshold     = 5
	greenConfidence     = 0.7
	maxReasonKeywords   = 3
	maxSuggestedSymptom = 4
)

// Validate rejects input the scorer must not be called with.
func Validate(in Input) error {
	if len([]rune(strings.TrimSpace(in.Complaint))) < MinComplaintLength {
		return &ValidationError{Reason: "Chief complaint is too short"}
	}
	if in.Age != nil && *in.Age < 0 {
		return &ValidationError{Reason: "Age must be a non-negative integer"}
	}
	return nil
}

// Score computes the triage verdict for the input. It is a pure function of
// its argument and the static tables.
func Score(in Input) Result {
	// Casers carry state and are not shared between goroutines.
	complaint := cases.Lower(language.Und).String(in.Complaint)

	var (
		score    int
		symptoms []string
		keywords []string
	)

	for _, group := range criticalKeywords {
		if phrase, ok := firstMatch(complaint, group.Phrases); ok {
			symptoms = append(symptoms, group.Tag)
			keywords = append(keywords, phrase)
			score += criticalKeywordWeight
		}
	}

	for _, group := range urgentKeywords {
		if phrase, ok := firstMatch(complaint, group.Phrases); ok {
			if !slices.Contains(symptoms, group.Tag) {
				symptoms = append(symptoms, group.Tag)
			}
			keywords = append(keywords, phrase)
			score += urgentKeywordWeight
		}
	}

	for _, condition := range criticalConditions {
		if strings.Contains(complaint, condition) {
			score += criticalConditionWeight
			keywords = append(keywords, condition)
		}
	}

	for _, condition := range urgentConditions {
		if strings.Contains(complaint, condition) {
			score += urgentConditionWeight
			keywords = append(keywords, condition)
		}
	}

	if len(in.SelectedSymptoms) > 0 {
		switch {
		case intersects(in.SelectedSymptoms, criticalSelections):
			score += criticalSelectionWeight
		case intersects(in.SelectedSymptoms, urgentSelections):
			score += urgentSelectionWeight
		}
	}

	var concerns []string
	if in.Vitals != nil {
		if pulse, ok := recorded(in.Vitals.Pulse); ok && (pulse > 120 || pulse < 50) {
			score += abnormalVitalWeight
			concerns = append(concerns, fmt.Sprintf("abnormal pulse (%s bpm)", formatReading(pulse)))
		}
		if temp, ok := recorded(in.Vitals.Temperature); ok && (temp > 103 || temp < 95) {
			score += abnormalVitalWeight
			concerns = append(concerns, fmt.Sprintf("critical temperature (%s°F)", formatReading(temp)))
		}
	}

	if in.Age != nil && *in.Age != 0 && (*in.Age < 2 || *in.Age > 70) {
		score += vulnerableAgeWeight
	}

	priority, confidence := classify(score)

	symptoms = dedupe(symptoms)
	return Result{
		Priority:          priority,
		PriorityLabel:     priority.Label(),
		Confidence:        round2(confidence),
		DetectedSymptoms:  symptoms,
		Reasoning:         reasoning(keywords, concerns, len(in.SelectedSymptoms) > 0, priority),
		SuggestedSymptoms: suggest(complaint, symptoms),
		Score:             score,
		DetectedKeywords:  nonNil(keywords),
	}
}

func classify(score int) (Priority, float64) {
	switch {
	case score >= criticalThreshold:
		return PriorityRed, math.Min(float64(score)/15, 1.0)
	case score >= urgentThreshold:
		return PriorityYellow, math.Min(float64(score)/10, 1.0)
	default:
		return PriorityGreen, greenConfidence
	}
}

func reasoning(keywords, concerns []string, selected bool, priority Priority) string {
	var parts []string
	if len(keywords) > 0 {
		n := min(len(keywords), maxReasonKeywords)
		parts = append(parts, "Detected concerning terms: "+strings.Join(keywords[:n], ", "))
	}
	if len(concerns) > 0 {
		parts = append(parts, "Vital signs concern: "+strings.Join(concerns, ", "))
	}
	if selected {
		parts = append(parts, "Selected symptoms indicate "+strings.ToLower(priority.Label())+" care")
	}
	if len(parts) == 0 {
		parts = append(parts, "Based on general assessment of complaint")
	}
	return strings.Join(parts, ". ") + "."
}

func suggest(complaint string, detected []string) []string {
	var candidates []string
	for _, cue := range suggestionCues {
		for _, fragment := range cue.fragments {
			if strings.Contains(complaint, fragment) {
				candidates = append(candidates, cue.tags...)
				break
			}
		}
	}

	out := make([]string, 0, maxSuggestedSymptom)
	for _, tag := range dedupe(candidates) {
		if slices.Contains(detected, tag) {
			continue
		}
		out = append(out, tag)
		if len(out) == maxSuggestedSymptom {
			break
		}
	}
	return out
}

func firstMatch(text string, phrases []string) (string, bool) {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return phrase, true
		}
	}
	return "", false
}

func intersects(selected, tags []string) bool {
	for _, s := range selected {
		if slices.Contains(tags, s) {
			return true
		}
	}
	return false
}

func recorded(v *float64) (float64, bool) {
	if v == nil || *v == 0 || math.IsNaN(*v) {
		return 0, false
	}
	return *v, true
}

// dedupe keeps the first occurrence of each value.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func formatReading(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
