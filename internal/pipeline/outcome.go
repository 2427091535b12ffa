package pipeline

import (
	"errors"
	"sort"

	"enrichprj/internal/model"
)

// Per-record outcomes, also used as the metrics label.
const (
	OutcomeCreated           = "created"
	OutcomeUpdated           = "updated"
	OutcomeSkipped           = "skipped"
	OutcomeInvalid           = "invalid"
	OutcomeFetchFailed       = "fetch_failed"
	OutcomeExtractionEmpty   = "extraction_empty"
	OutcomePersistenceFailed = "persistence_failed"
	OutcomeFailed            = "failed"
)

// Classify maps a per-record error to its outcome.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, model.ErrInvalidSourceRecord):
		return OutcomeInvalid
	case errors.Is(err, model.ErrFetchFailure):
		return OutcomeFetchFailed
	case errors.Is(err, model.ErrExtractionEmpty):
		return OutcomeExtractionEmpty
	case errors.Is(err, model.ErrPersistenceFailure):
		return OutcomePersistenceFailed
	}
	return OutcomeFailed
}

// Stats counts outcomes over one batch.
type Stats struct {
	Total    int
	Outcomes map[string]int
}

func (s *Stats) add(outcome string) {
	if s.Outcomes == nil {
		s.Outcomes = map[string]int{}
	}
	s.Total++
	s.Outcomes[outcome]++
}

func (s Stats) Failed() int {
	n := 0
	for o, c := range s.Outcomes {
		switch o {
		case OutcomeCreated, OutcomeUpdated, OutcomeSkipped:
		default:
			n += c
		}
	}
	return n
}

// Sorted returns outcome names in a stable order for display.
func (s Stats) Sorted() []string {
	names := make([]string, 0, len(s.Outcomes))
	for o := range s.Outcomes {
		names = append(names, o)
	}
	sort.Strings(names)
	return names
}
