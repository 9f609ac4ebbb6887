package services

import "errors"

var (
	// ErrDocumentRead is returned when an uploaded document cannot be parsed.
	ErrDocumentRead = errors.New("document read error")

	// ErrModelUnavailable is returned when the entity recognizer cannot be loaded.
	ErrModelUnavailable = errors.New("entity recognizer unavailable")

	// ErrEmptyInput is returned when the document or job description is missing.
	ErrEmptyInput = errors.New("empty input")

	// ErrRecognition is returned when a loaded recognizer fails on a request.
	ErrRecognition = errors.New("entity recognition failed")
)
