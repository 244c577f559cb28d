package domain

import (
	"errors"
	"fmt"
)

// Stage-level error taxonomy. Every stage failure maps to exactly one of
// these so the delivery layer can pick a status code and a user-facing
// message without inspecting error strings.
var (
	// ErrSnapshotMissing: a required upstream snapshot is absent, empty
	// or unreadable. Terminal for the stage; the only recovery is going
	// back to the previous stage.
	ErrSnapshotMissing = errors.New("required snapshot is missing")

	// ErrSnapshotSchema: a snapshot exists but carries an unexpected
	// schema version. Rejected on read, never decoded.
	ErrSnapshotSchema = errors.New("snapshot schema version mismatch")

	// ErrStaleInput: the snapshot a derived record was computed from has
	// been overwritten since.
	ErrStaleInput = errors.New("input snapshot is stale")

	// ErrMalformedResponse: a collaborator answered with a shape that
	// cannot be correlated back to the request.
	ErrMalformedResponse = errors.New("malformed collaborator response")

	// ErrStageTimeout: the stage's collaborator call exceeded its
	// deadline. Distinct from a hard transport failure.
	ErrStageTimeout = errors.New("stage timed out")

	// ErrStageBusy: the stage already has a call in flight.
	ErrStageBusy = errors.New("stage already running")

	// ErrEmptySelection: commit requires at least one selected ad.
	ErrEmptySelection = errors.New("no ads selected")

	// ErrAdNotFound: the toggled ad ID is not in the catalog.
	ErrAdNotFound = errors.New("ad not found in catalog")
)

// ValidationError reports a missing required campaign input field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field %q is empty", e.Field)
}
