package apixels

import (
	"fmt"
)

// ErrorKind classifies a render failure.
type ErrorKind int

const (
	// InvalidConfiguration covers unusable caller input such as a zero
	// sample size or an empty image.
	InvalidConfiguration ErrorKind = iota + 1
	// DecodeFailure wraps an error returned by the image decoder.
	DecodeFailure
	// BufferConstructionFailure means an internal buffer did not have the
	// dimensions the pipeline expected.
	BufferConstructionFailure
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidConfiguration:
		return "invalid configuration"
	case DecodeFailure:
		return "decode failure"
	case BufferConstructionFailure:
		return "buffer construction failure"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the single failure type returned by the render pipeline. Stage
// names the pipeline step that failed.
type Error struct {
	Kind  ErrorKind
	Stage string
	Err   error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidConfiguration = &Error{Kind: InvalidConfiguration}
	ErrDecode               = &Error{Kind: DecodeFailure}
	ErrBufferConstruction   = &Error{Kind: BufferConstructionFailure}
)

func newError(kind ErrorKind, stage string, err error) *Error {
	return &Error{Kind: kind, Stage: stage, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Stage == "" && e.Err == nil:
		return e.Kind.String()
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Stage, e.Kind)
	case e.Stage == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
