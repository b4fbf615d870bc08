package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrCourseNotFound is returned when a course id does not resolve.
	ErrCourseNotFound = errors.New("course not found")
	// ErrDraftNotFound is returned when a draft id does not resolve.
	ErrDraftNotFound = errors.New("course draft not found")
	// ErrDraftNotPending rejects publish attempts on drafts that are
	// not in pending_review.
	ErrDraftNotPending = errors.New("course draft is not pending review")
	// ErrDraftNotEditing rejects submit attempts on drafts that are
	// not in editing.
	ErrDraftNotEditing = errors.New("course draft is not editable")
	// ErrDraftAlreadyOpen rejects creating a second open draft for the
	// same course.
	ErrDraftAlreadyOpen = errors.New("course already has an open draft")
	// ErrCourseNotApproved rejects drafting against a course that has
	// never been published.
	ErrCourseNotApproved = errors.New("course is not approved")
)

// StructuralError reports a draft sub-node whose original-id
// back-reference does not resolve to a live node of the same course.
// It is fatal: the whole publish aborts with no partial merge.
type StructuralError struct {
	Entity      string
	DraftNodeID uuid.UUID
	OriginalID  uuid.UUID
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural consistency: %s draft %s references missing live node %s", e.Entity, e.DraftNodeID, e.OriginalID)
}

func NewStructuralError(entity string, draftNodeID, originalID uuid.UUID) error {
	return &StructuralError{Entity: entity, DraftNodeID: draftNodeID, OriginalID: originalID}
}
