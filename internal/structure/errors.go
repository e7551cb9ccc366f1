package structure

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"github.com/alexiusacademia/wingstruct/internal/wing"
)

// Error kinds. Match with errors.Is.
var (
	ErrInsufficientReferenceGeometry = wing.ErrInsufficientReferenceGeometry
	ErrInvalidWallThickness          = errors.New("tubular stringer walls are larger than the total diameter")
	ErrStringerOutsideWing           = errors.New("the stringer may lie entirely outside the region of the wing")
	ErrStringerHollowFailed          = errors.New("an issue occurred when attempting to hollow the stringer")
	ErrStructuralGenerationFailed    = errors.New("structural generation failed")
	ErrInvalidParameters             = errors.New("invalid parameters")
)

// Error is a fatal regeneration failure. Highlight selects the geometry the
// user should inspect; HighlightIDs is its resolution at the time of the
// failure.
type Error struct {
	Kind         error
	Msg          string
	Highlight    kernel.Query
	HighlightIDs []kernel.EntityID
	Err          error
}

func (e *Error) Error() string {
	s := e.Kind.Error()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Is matches the error kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the kernel cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func failf(kind error, highlight kernel.Query, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Highlight: highlight, Err: cause}
}
