package report

import "errors"

var (
	// ErrNoInputData indicates a store read for a required snapshot failed;
	// no partial report is produced.
	ErrNoInputData = errors.New("no input data for report")
	// ErrNarrativeUnavailable indicates no narrative generator is configured.
	ErrNarrativeUnavailable = errors.New("narrative generator not configured")
	// ErrInvalidInput indicates invalid report parameters.
	ErrInvalidInput = errors.New("invalid report input")
)
