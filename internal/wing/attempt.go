package wing

import (
	"fmt"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"go.uber.org/zap"
)

// Diagnostic records a best-effort step that failed and was skipped.
type Diagnostic struct {
	Step string
	Op   kernel.OpID
	Err  error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s (%s): %v", d.Step, d.Op, d.Err)
}

// Attempt runs a best-effort kernel step. A failure is logged and returned
// as a Diagnostic instead of an error.
func Attempt(log *zap.Logger, step string, op kernel.OpID, fn func() error) *Diagnostic {
	if err := fn(); err != nil {
		log.Warn("best-effort step skipped",
			zap.String("step", step),
			zap.String("op", string(op)),
			zap.Error(err))
		return &Diagnostic{Step: step, Op: op, Err: err}
	}
	log.Debug(step+" successful", zap.String("op", string(op)))
	return nil
}

// Diagnostics collects the failures of best-effort steps.
type Diagnostics []Diagnostic

// Add appends d when it is non-nil.
func (ds *Diagnostics) Add(d *Diagnostic) {
	if d != nil {
		*ds = append(*ds, *d)
	}
}
