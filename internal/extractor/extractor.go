// Package extractor runs the two-pass extract / validate / merge algorithm
// over one source URL.
package extractor

import (
	"context"
	"errors"
	"fmt"

	"enrichprj/internal/logger"
	"enrichprj/internal/model"
)

// Source is the fetch-and-parse collaborator. pass selects the strategy:
// 1 is the cheap primary strategy, 2 the wider fallback one.
type Source interface {
	Extract(ctx context.Context, url string, pass int) (model.RawRecord, error)
}

type State int

const (
	Unattempted State = iota
	Pass1Done
	Validated
	NeedsPass2
	Pass2Done
	Merged
)

func (s State) String() string {
	switch s {
	case Unattempted:
		return "unattempted"
	case Pass1Done:
		return "pass1_done"
	case Validated:
		return "validated"
	case NeedsPass2:
		return "needs_pass2"
	case Pass2Done:
		return "pass2_done"
	case Merged:
		return "merged"
	}
	return "unknown"
}

// Result is the final record for a URL plus the attempts that produced it.
type Result struct {
	Record   model.RawRecord
	Attempts []model.ExtractionAttempt
	State    State
}

// Quality returns the score of the last attempt.
func (r *Result) Quality() float64 {
	if len(r.Attempts) == 0 {
		return 0
	}
	return r.Attempts[len(r.Attempts)-1].QualityScore
}

type Extractor struct {
	Source Source
	Log    *logger.Logger

	// OnAttempt, when set, is called after each validated pass.
	OnAttempt func(model.ExtractionAttempt)
}

func New(src Source, log *logger.Logger) *Extractor {
	return &Extractor{Source: src, Log: logger.OrNop(log)}
}

// Run extracts url. A pass 1 that yields nothing abandons the record with
// model.ErrExtractionEmpty and no second pass is attempted.
func (e *Extractor) Run(ctx context.Context, url string) (*Result, error) {
	log := logger.OrNop(e.Log).With("url", url)
	res := &Result{State: Unattempted}

	rec1, err := e.Source.Extract(ctx, url, 1)
	if err != nil {
		return res, asFetchFailure(err)
	}
	res.State = Pass1Done
	if rec1.Empty() {
		return res, fmt.Errorf("%w: %s", model.ErrExtractionEmpty, url)
	}

	v1 := Validate(rec1)
	res.Attempts = append(res.Attempts, e.attempt(1, rec1, v1))
	if !v1.NeedsPass2 {
		res.State = Validated
		res.Record = rec1
		return res, nil
	}

	res.State = NeedsPass2
	log.Debug("second pass needed", "quality_score", v1.QualityScore, "issues", v1.Issues)

	rec2, err := e.Source.Extract(ctx, url, 2)
	if err != nil {
		log.Warn("second pass failed, keeping first pass", "error", err)
		res.Record = rec1
		res.State = Merged
		return res, nil
	}
	res.State = Pass2Done

	merged := Merge(rec1, rec2)
	res.Attempts = append(res.Attempts, e.attempt(2, merged, Validate(merged)))
	res.Record = merged
	res.State = Merged
	return res, nil
}

func (e *Extractor) attempt(pass int, rec model.RawRecord, v Validation) model.ExtractionAttempt {
	a := model.ExtractionAttempt{
		Pass:         pass,
		Fields:       rec,
		QualityScore: v.QualityScore,
		Issues:       v.Issues,
	}
	if e.OnAttempt != nil {
		e.OnAttempt(a)
	}
	return a
}

func asFetchFailure(err error) error {
	if errors.Is(err, model.ErrFetchFailure) {
		return err
	}
	return fmt.Errorf("%w: %v", model.ErrFetchFailure, err)
}
