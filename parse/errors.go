package parse

import (
	"fmt"

	"go.uber.org/multierr"
)

// errorList aggregates every syntax error encountered while lexing or
// parsing one input. Unlike analysis.CheckPolicy and engine.Verify, which
// stop at their first failure, the parser collects everything in one pass
// and reports it together, combined with go.uber.org/multierr.
type errorList struct {
	errs []error
}

func (e *errorList) add(err error) {
	e.errs = append(e.errs, err)
}

func (e *errorList) ok() bool { return len(e.errs) == 0 }

// combined returns nil if no errors were recorded, or a single error
// combining every recorded error otherwise.
func (e *errorList) combined() error {
	if e.ok() {
		return nil
	}
	var merr error
	for _, err := range e.errs {
		merr = multierr.Append(merr, err)
	}
	return merr
}

func posErrorf(t token, format string, args ...any) error {
	return fmt.Errorf("line %d:%d: %s", t.line, t.col, fmt.Sprintf(format, args...))
}
