package model

import "errors"

var (
	// ErrInvalidSourceRecord is returned when no marketplace id can be extracted.
	ErrInvalidSourceRecord = errors.New("invalid source record")

	// ErrFetchFailure covers transport errors and bot-detection pages.
	ErrFetchFailure = errors.New("fetch failure")

	// ErrExtractionEmpty is returned when pass 1 yields no data at all.
	ErrExtractionEmpty = errors.New("extraction empty")

	// ErrLowQualityExtraction marks a pass that needs a second attempt.
	ErrLowQualityExtraction = errors.New("low quality extraction")

	ErrPersistenceFailure = errors.New("persistence failure")

	// ErrConfigLoadFailure is returned alongside the default scoring config.
	ErrConfigLoadFailure = errors.New("scoring config load failure")

	ErrNotFound = errors.New("not found")
)
