package analyses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"triage-backend/internal/shared/metrics"
	"triage-backend/internal/shared/telemetry"
	"triage-backend/internal/shared/util"
	"triage-backend/internal/triage"
)

// Service validates complaints and scores them.
type Service struct {
	// Scorer defaults to triage.Score.
	Scorer func(triage.Input) triage.Result
	Now    func() time.Time
}

// NewService constructs a Service backed by the rule-based scorer.
func NewService() *Service {
	return &Service{Scorer: triage.Score, Now: time.Now}
}

// Assess validates in and returns its triage verdict. Failures wrap
// triage.ErrInvalidInput or triage.ErrInternal; there are no partial results.
func (s *Service) Assess(ctx context.Context, in triage.Input) (res triage.Result, err error) {
	if err := ctx.Err(); err != nil {
		metrics.IncAssessmentFailed(failureCanceled)
		return triage.Result{}, err
	}
	if err := triage.Validate(in); err != nil {
		metrics.IncAssessmentFailed(failureInvalidInput)
		return triage.Result{}, err
	}

	now := s.now()
	start := now()
	defer func() {
		if rec := recover(); rec != nil {
			metrics.IncAssessmentFailed(failureInternal)
			telemetry.Error("triage.failed", map[string]any{"error": fmt.Sprint(rec)})
			res = triage.Result{}
			err = fmt.Errorf("%w: %v", triage.ErrInternal, rec)
		}
	}()

	res = s.scorer()(in)
	elapsed := now().Sub(start)

	metrics.ObserveAssessment(string(res.Priority), res.Score, res.Confidence, elapsed)
	telemetry.Info("triage.assessed", map[string]any{
		"complaint":         util.Fingerprint(in.Complaint),
		"priority":          res.Priority,
		"score":             res.Score,
		"confidence":        res.Confidence,
		"detected_symptoms": len(res.DetectedSymptoms),
		"selected_symptoms": len(in.SelectedSymptoms),
		"duration_ms":       float64(elapsed.Microseconds()) / 1000.0,
	})
	return res, nil
}

// RecordFailure counts a request that failed before reaching Assess.
func RecordFailure(err error) {
	switch {
	case errors.Is(err, triage.ErrInvalidInput):
		metrics.IncAssessmentFailed(failureInvalidInput)
	default:
		metrics.IncAssessmentFailed(failureInternal)
	}
}

func (s *Service) scorer() func(triage.Input) triage.Result {
	if s.Scorer != nil {
		return s.Scorer
	}
	return triage.Score
}

func (s *Service) now() func() time.Time {
	if s.Now != nil {
		return s.Now
	}
	return time.Now
}
