package domain

import "errors"

var (
	// ErrDataSource marks a failure of an upstream data source after retries.
	ErrDataSource = errors.New("data source unavailable")
	// ErrUnknownRail is returned when no rail is registered under a name.
	ErrUnknownRail = errors.New("unknown rail")
	// ErrMissingColumn is returned when an uploaded file lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrUnsupportedFile is returned for uploads that are not csv, xls or xlsx.
	ErrUnsupportedFile = errors.New("unsupported file type")
)
