package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session has not been initialized.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSubjectNotFound indicates the requested subject is not in the catalog.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrCatalogNotFound indicates the catalog could not be loaded from the provider.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrEmptySubject is returned when a subject has no questions to play.
	ErrEmptySubject = errors.New("subject has no questions")
	// ErrUnknownOption indicates a selected answer is not one of the current question's options.
	ErrUnknownOption = errors.New("answer is not an option of the current question")
	// ErrNoAnswerSelected is returned when confirm is requested before an answer is chosen.
	ErrNoAnswerSelected = errors.New("no answer selected")
	// ErrInvalidTransition is returned when an intent is not valid in the current phase.
	ErrInvalidTransition = errors.New("invalid transition")
)
