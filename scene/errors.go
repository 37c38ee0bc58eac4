package scene

import "errors"

var (
	ErrCorruptDocument     = errors.New("corrupt document")
	ErrMissingAttribute    = errors.New("missing required attribute")
	ErrCoercion            = errors.New("cannot coerce value")
	ErrUnknownResource     = errors.New("unknown resource")
	ErrUnknownComponent    = errors.New("unknown component")
	ErrUnknownTrigger      = errors.New("unknown trigger")
	ErrUnresolvedReference = errors.New("unresolved entity reference")
)
