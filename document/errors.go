package document

import "errors"

var (
	// ErrAlreadyOpen is returned by Store.Open for a document that is
	// already tracked. Close it first or use Update.
	ErrAlreadyOpen = errors.New("document already open")

	// ErrNotOpen is returned for operations on an untracked document,
	// including a second Close.
	ErrNotOpen = errors.New("document not open")

	// ErrInvalidEdit is returned when an edit does not describe the change
	// between the current text and the new text.
	ErrInvalidEdit = errors.New("invalid edit")
)
