package triage

import (
	"errors"
	"math"
	"reflect"
	"slices"
	"strings"
	"sync"
	"testing"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestScoreNeutralComplaintIsGreen(t *testing.T) {
	for _, complaint := range []string{"routine checkup", "feeling tired today", "need a prescription refill"} {
		got := Score(Input{Complaint: complaint})
		if got.Priority != PriorityGreen {
			t.Fatalf("%q: expected green, got %s", complaint, got.Priority)
		}
		if got.PriorityLabel != "NON-URGENT" {
			t.Fatalf("%q: expected NON-URGENT, got %s", complaint, got.PriorityLabel)
		}
		if got.Confidence != 0.7 {
			t.Fatalf("%q: expected confidence 0.7, got %v", complaint, got.Confidence)
		}
		if got.Reasoning != "Based on general assessment of complaint." {
			t.Fatalf("%q: unexpected reasoning %q", complaint, got.Reasoning)
		}
		if len(got.DetectedSymptoms) != 0 {
			t.Fatalf("%q: expected no detected symptoms, got %v", complaint, got.DetectedSymptoms)
		}
	}
}

func TestScoreChestPainAndBreathing(t *testing.T) {
	got := Score(Input{Complaint: "Severe chest pain and difficulty breathing"})

	for _, tag := range []string{"chest_pain", "breathing"} {
		if !slices.Contains(got.DetectedSymptoms, tag) {
			t.Fatalf("expected %s in detected symptoms %v", tag, got.DetectedSymptoms)
		}
	}
	if got.Score < 20 {
		t.Fatalf("expected score >= 20, got %d", got.Score)
	}
	if got.Priority != PriorityRed || got.PriorityLabel != "CRITICAL" {
		t.Fatalf("expected red/CRITICAL, got %s/%s", got.Priority, got.PriorityLabel)
	}
	if got.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0, got %v", got.Confidence)
	}
	wantReasoning := "Detected concerning terms: chest pain, difficulty breathing, pain."
	if got.Reasoning != wantReasoning {
		t.Fatalf("expected reasoning %q, got %q", wantReasoning, got.Reasoning)
	}
	if len(got.SuggestedSymptoms) != 0 {
		t.Fatalf("expected every suggestion to be filtered as detected, got %v", got.SuggestedSymptoms)
	}
}

func TestScoreThresholdBoundary(t *testing.T) {
	cases := []struct {
		name       string
		input      Input
		score      int
		priority   Priority
		confidence float64
	}{
		{
			name:       "nine_is_yellow",
			input:      Input{Complaint: "history of kidney stone", Age: intPtr(80)},
			score:      9,
			priority:   PriorityYellow,
			confidence: 0.9,
		},
		{
			name:       "ten_is_red",
			input:      Input{Complaint: "fever and vomiting"},
			score:      10,
			priority:   PriorityRed,
			confidence: 0.67,
		},
		{
			name:       "two_is_green",
			input:      Input{Complaint: "feeling tired", Age: intPtr(75)},
			score:      2,
			priority:   PriorityGreen,
			confidence: 0.7,
		},
		{
			name:       "five_is_yellow",
			input:      Input{Complaint: "feeling tired", Vitals: &Vitals{Pulse: floatPtr(130)}},
			score:      5,
			priority:   PriorityYellow,
			confidence: 0.5,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.input)
			if got.Score != tc.score {
				t.Fatalf("expected score %d, got %d", tc.score, got.Score)
			}
			if got.Priority != tc.priority {
				t.Fatalf("expected priority %s, got %s", tc.priority, got.Priority)
			}
			if got.Confidence != tc.confidence {
				t.Fatalf("expected confidence %v, got %v", tc.confidence, got.Confidence)
			}
		})
	}
}

func TestScoreUrgentSymptomsDetected(t *testing.T) {
	got := Score(Input{Complaint: "fever and vomiting"})
	want := []string{"fever", "vomiting"}
	if !reflect.DeepEqual(got.DetectedSymptoms, want) {
		t.Fatalf("expected %v, got %v", want, got.DetectedSymptoms)
	}
}

func TestScoreAbnormalPulse(t *testing.T) {
	got := Score(Input{Complaint: "feeling tired", Vitals: &Vitals{Pulse: floatPtr(130)}})
	if got.Priority != PriorityYellow {
		t.Fatalf("expected yellow, got %s", got.Priority)
	}
	if !strings.Contains(got.Reasoning, "abnormal pulse (130 bpm)") {
		t.Fatalf("expected pulse concern in reasoning, got %q", got.Reasoning)
	}
}

// "headache" contains the urgent trigger "ache", so the pulse pushes it to red.
func TestScoreHeadacheWithAbnormalPulse(t *testing.T) {
	got := Score(Input{Complaint: "mild headache", Vitals: &Vitals{Pulse: floatPtr(130)}})
	if got.Score != 10 {
		t.Fatalf("expected score 10, got %d", got.Score)
	}
	if got.Priority != PriorityRed {
		t.Fatalf("expected red, got %s", got.Priority)
	}
	want := "Detected concerning terms: ache. Vital signs concern: abnormal pulse (130 bpm)."
	if got.Reasoning != want {
		t.Fatalf("expected reasoning %q, got %q", want, got.Reasoning)
	}
}

func TestScoreVitalChecksAreIndependent(t *testing.T) {
	got := Score(Input{
		Complaint: "feeling tired",
		Vitals:    &Vitals{Pulse: floatPtr(45), Temperature: floatPtr(104.5)},
	})
	if got.Score != 10 {
		t.Fatalf("expected score 10, got %d", got.Score)
	}
	want := "Vital signs concern: abnormal pulse (45 bpm), critical temperature (104.5°F)."
	if got.Reasoning != want {
		t.Fatalf("expected reasoning %q, got %q", want, got.Reasoning)
	}
}

func TestScoreUnrecordedVitalsAndAge(t *testing.T) {
	got := Score(Input{
		Complaint: "feeling tired",
		Age:       intPtr(0),
		Vitals:    &Vitals{Pulse: floatPtr(0), Temperature: floatPtr(0)},
	})
	if got.Score != 0 {
		t.Fatalf("expected zero readings to be ignored, got score %d", got.Score)
	}
}

func TestScoreVulnerableAgeAlone(t *testing.T) {
	got := Score(Input{Complaint: "feeling tired", Age: intPtr(1)})
	if got.Score != 2 {
		t.Fatalf("expected score 2, got %d", got.Score)
	}
	if got.Priority != PriorityGreen {
		t.Fatalf("expected green, got %s", got.Priority)
	}
}

func TestScoreSelectedSymptomsFirstMatchWins(t *testing.T) {
	cases := []struct {
		name     string
		selected []string
		score    int
		label    string
	}{
		{name: "critical", selected: []string{"bleeding"}, score: 10, label: "critical"},
		{name: "critical_and_urgent", selected: []string{"fever", "chest_pain"}, score: 10, label: "critical"},
		{name: "urgent", selected: []string{"pain"}, score: 5, label: "urgent"},
		{name: "unknown", selected: []string{"rash"}, score: 0, label: "non-urgent"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(Input{Complaint: "feeling tired", SelectedSymptoms: tc.selected})
			if got.Score != tc.score {
				t.Fatalf("expected score %d, got %d", tc.score, got.Score)
			}
			want := "Selected symptoms indicate " + tc.label + " care."
			if got.Reasoning != want {
				t.Fatalf("expected reasoning %q, got %q", want, got.Reasoning)
			}
		})
	}
}

func TestScoreConditions(t *testing.T) {
	got := Score(Input{Complaint: "known leukemia, now pneumonia"})
	if got.Score != 22 {
		t.Fatalf("expected score 22, got %d", got.Score)
	}
	if len(got.DetectedSymptoms) != 0 {
		t.Fatalf("conditions must not add symptom tags, got %v", got.DetectedSymptoms)
	}
	want := []string{"leukemia", "pneumonia"}
	if !reflect.DeepEqual(got.DetectedKeywords, want) {
		t.Fatalf("expected keywords %v, got %v", want, got.DetectedKeywords)
	}
	if got.Confidence != 1.0 {
		t.Fatalf("expected confidence capped at 1.0, got %v", got.Confidence)
	}
}

func TestScoreReasoningListsFirstThreeTerms(t *testing.T) {
	got := Score(Input{Complaint: "seizure then collapsed, fever and vomiting"})
	want := "Detected concerning terms: collapsed, seizure, fever."
	if got.Reasoning != want {
		t.Fatalf("expected reasoning %q, got %q", want, got.Reasoning)
	}
	if len(got.DetectedKeywords) != 4 {
		t.Fatalf("expected 4 keywords, got %v", got.DetectedKeywords)
	}
}

func TestScoreFirstPhrasePerTag(t *testing.T) {
	got := Score(Input{Complaint: "chest pressure after a heart attack"})
	if got.Score != 10 {
		t.Fatalf("expected one match for chest_pain, got score %d", got.Score)
	}
	if !reflect.DeepEqual(got.DetectedKeywords, []string{"heart attack"}) {
		t.Fatalf("expected first phrase in table order, got %v", got.DetectedKeywords)
	}
}

func TestScoreIsCaseInsensitive(t *testing.T) {
	lower := Score(Input{Complaint: "patient is unconscious"})
	upper := Score(Input{Complaint: "PATIENT IS UNCONSCIOUS"})
	if !reflect.DeepEqual(lower, upper) {
		t.Fatalf("expected identical results, got %+v vs %+v", lower, upper)
	}
}

func TestScoreSuggestions(t *testing.T) {
	cases := []struct {
		name      string
		complaint string
		want      []string
	}{
		{name: "chest_cue", complaint: "tightness in my chest", want: []string{"chest_pain", "breathing"}},
		{name: "cough_and_wound", complaint: "cough and a wound on arm", want: []string{"breathing", "bleeding"}},
		{name: "temperature_and_hurt", complaint: "temperature and it hurts", want: []string{"fever", "pain"}},
		{name: "fever_detected", complaint: "fever since yesterday", want: []string{}},
		{name: "cap_at_four", complaint: "heart racing, blood on tissue, hurt, temperature", want: []string{"chest_pain", "breathing", "bleeding", "fever"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(Input{Complaint: tc.complaint})
			if !reflect.DeepEqual(got.SuggestedSymptoms, tc.want) {
				t.Fatalf("expected suggestions %v, got %v", tc.want, got.SuggestedSymptoms)
			}
		})
	}
}

func TestScoreSuggestionsNeverDetected(t *testing.T) {
	complaints := []string{
		"chest pain with cough",
		"heart attack, blood loss and high temperature",
		"wound is infected and hurts badly",
		"shortness of breath after a fall",
	}
	for _, complaint := range complaints {
		got := Score(Input{Complaint: complaint})
		if len(got.SuggestedSymptoms) > 4 {
			t.Fatalf("%q: too many suggestions %v", complaint, got.SuggestedSymptoms)
		}
		for _, s := range got.SuggestedSymptoms {
			if slices.Contains(got.DetectedSymptoms, s) {
				t.Fatalf("%q: suggestion %s already detected", complaint, s)
			}
		}
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	in := Input{
		Complaint:        "crushing pain, vomiting, swelling and a burn after fall, kidney stone history",
		Age:              intPtr(72),
		Vitals:           &Vitals{Pulse: floatPtr(135), Temperature: floatPtr(94)},
		SelectedSymptoms: []string{"pain", "bleeding"},
	}
	first := Score(in)
	for i := 0; i < 20; i++ {
		if next := Score(in); !reflect.DeepEqual(first, next) {
			t.Fatalf("expected identical output, got %+v vs %+v", first, next)
		}
	}
}

func TestScoreConcurrentCallers(t *testing.T) {
	in := Input{Complaint: "severe bleeding and fever", Age: intPtr(80)}
	want := Score(in)

	var wg sync.WaitGroup
	errs := make(chan Result, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Score(in); !reflect.DeepEqual(got, want) {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("concurrent result differs: %+v", got)
	}
}

func TestScoreConfidenceRange(t *testing.T) {
	complaints := []string{
		"fever and vomiting",
		"infection",
		"stroke",
		"stroke with fever",
		"cancer",
		"appendicitis",
		"minor scrape",
	}
	for _, complaint := range complaints {
		got := Score(Input{Complaint: complaint})
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Fatalf("%q: confidence out of range: %v", complaint, got.Confidence)
		}
		if scaled := got.Confidence * 100; math.Abs(scaled-math.Round(scaled)) > 1e-9 {
			t.Fatalf("%q: confidence not rounded to 2 places: %v", complaint, got.Confidence)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		input   Input
		wantErr bool
	}{
		{name: "ok", input: Input{Complaint: "fever"}},
		{name: "empty", input: Input{Complaint: ""}, wantErr: true},
		{name: "whitespace", input: Input{Complaint: "   ab   "}, wantErr: true},
		{name: "three_chars", input: Input{Complaint: " abc "}},
		{name: "negative_age", input: Input{Complaint: "fever", Age: intPtr(-1)}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTablesReturnsCopy(t *testing.T) {
	tables := Tables()
	tables.Critical[0].Phrases[0] = "mutated"
	tables.CriticalConditions[0] = "mutated"

	fresh := Tables()
	if fresh.Critical[0].Phrases[0] != "chest pain" {
		t.Fatalf("expected static table to be unchanged, got %q", fresh.Critical[0].Phrases[0])
	}
	if fresh.CriticalConditions[0] != "cancer" {
		t.Fatalf("expected static conditions to be unchanged, got %q", fresh.CriticalConditions[0])
	}
	if len(fresh.NonUrgent) != 4 {
		t.Fatalf("expected 4 non-urgent groups, got %d", len(fresh.NonUrgent))
	}
}
