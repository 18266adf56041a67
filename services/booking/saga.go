package booking

import (
	"context"

	"go.uber.org/zap"
)

// sagaStep is one reversible step of a multi-provider transaction. compensate
// may be nil for steps with nothing to undo.
type sagaStep struct {
	name       string
	run        func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

// runSaga executes steps in order. On the first failure it runs the
// compensations of every completed step in reverse order and returns the
// triggering error. Compensation failures are logged and swallowed so the
// root cause is never masked by cleanup noise.
func runSaga(ctx context.Context, logger *zap.Logger, steps []sagaStep) error {
	var done []sagaStep

	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			logger.Error("saga step failed, compensating",
				zap.String("step", step.name), zap.Error(err))
			compensate(ctx, logger, done)
			return err
		}
		done = append(done, step)
	}
	return nil
}

func compensate(ctx context.Context, logger *zap.Logger, done []sagaStep) {
	for i := len(done) - 1; i >= 0; i-- {
		step := done[i]
		if step.compensate == nil {
			continue
		}
		if err := step.compensate(ctx); err != nil {
			logger.Error("saga compensation failed",
				zap.String("step", step.name), zap.Error(err))
		}
	}
}
