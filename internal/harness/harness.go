package harness

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/iterstruct/internal/engine"
	"github.com/roach88/iterstruct/internal/frontend"
)

// Harness runs cases against one engine configuration.
type Harness struct {
	engine *engine.Engine
	logger *zap.Logger
}

// New creates a harness. A nil logger discards output.
func New(logger *zap.Logger) *Harness {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harness{
		engine: engine.New(engine.WithLogger(logger)),
		logger: logger,
	}
}

// Run executes a case with a silent harness.
func Run(c *Case) (*Result, error) {
	return New(nil).Run(c)
}

// Run parses the case source, generates for it and evaluates the
// expectations.
//
// A returned error means the case could not be executed at all (the
// source does not parse, or the engine failed). Expectation mismatches
// are reported in Result.Errors.
func (h *Harness) Run(c *Case) (*Result, error) {
	pkg, err := frontend.ParseSource(InputFile, []byte(c.Source), frontend.Options{
		Types:  c.Types,
		Logger: h.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("case %s: %w", c.Name, err)
	}

	gen, err := h.engine.Generate(pkg)
	if err != nil {
		return nil, fmt.Errorf("case %s: %w", c.Name, err)
	}

	result := NewResult(gen)
	for _, msg := range EvaluateExpectations(gen, c.Expect) {
		result.AddError(msg)
	}

	h.logger.Debug("case finished",
		zap.String("case", c.Name),
		zap.Bool("pass", result.Pass),
		zap.Int("errors", len(result.Errors)))
	return result, nil
}
