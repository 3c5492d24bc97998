package engine

import "errors"

var (
	// ErrPlacementFailed means no free cell could hold the new shape.
	ErrPlacementFailed = errors.New("no free space for shape")
	// ErrInvalidSelection means the request needs an active shape and there is none.
	ErrInvalidSelection = errors.New("no valid shape selected")
	// ErrBlockedMove means the move or turn would leave the bay or hit another shape.
	ErrBlockedMove = errors.New("move blocked")
	// ErrUnknownDirection means the move token names no axis.
	ErrUnknownDirection = errors.New("unknown direction")
	// ErrInvalidRotation means the turn is not a multiple of 90 degrees.
	ErrInvalidRotation = errors.New("rotation must be a multiple of 90 degrees")
	// ErrUnknownShape means the shape type is not in the catalogue.
	ErrUnknownShape = errors.New("unknown shape type")
	// ErrInvalidDimensions means the requested bay size is unusable.
	ErrInvalidDimensions = errors.New("invalid bay dimensions")
	// ErrNothingToUndo is returned by Undo/Redo when the stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is returned by Redo when the stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")
)
