// Package saga runs a sequence of steps against independently failing systems
// and compensates completed steps, in reverse order, when a later step fails.
//
//	s := saga.New("signup", logger)
//	s.AddStep("create_account", createAccount, deleteAccount)
//	s.AddStep("create_profile", createProfile, nil)
//	err := s.Execute(ctx) // original step error, never the compensation error
//
// Compensation is best effort. A failed compensation is logged and handed to
// the OnCompensationFailure hook; it never replaces the error that caused it.
package saga

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Action is one forward or compensating action
type Action func(ctx context.Context) error

// CompensationFailure describes a compensation that could not be completed
type CompensationFailure struct {
	Saga       string
	Step       string
	FailedStep string
	Cause      error
	Err        error
	OccurredAt time.Time
}

type step struct {
	name       string
	execute    Action
	compensate Action
}

// Saga is a single-use, ordered list of steps
type Saga struct {
	name      string
	steps     []step
	logger    *zap.Logger
	onFailure func(ctx context.Context, f CompensationFailure)
}

// New creates a saga. A nil logger disables logging.
func New(name string, logger *zap.Logger) *Saga {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Saga{
		name:   name,
		steps:  make([]step, 0),
		logger: logger,
	}
}

// AddStep appends a step. compensate may be nil when the step has nothing to undo.
func (s *Saga) AddStep(name string, execute Action, compensate Action) *Saga {
	s.steps = append(s.steps, step{name: name, execute: execute, compensate: compensate})
	return s
}

// OnCompensationFailure registers a hook called for every failed compensation
func (s *Saga) OnCompensationFailure(fn func(ctx context.Context, f CompensationFailure)) *Saga {
	s.onFailure = fn
	return s
}

// Execute runs the steps in order. When a step fails, the compensations of the
// steps that already completed run in reverse order and the step's error is returned as is.
func (s *Saga) Execute(ctx context.Context) error {
	completed := make([]int, 0, len(s.steps))

	for i, st := range s.steps {
		if err := st.execute(ctx); err != nil {
			s.logger.Warn("saga step failed",
				zap.String("saga", s.name),
				zap.String("step", st.name),
				zap.Error(err),
			)
			s.compensate(ctx, completed, st.name, err)
			return err
		}
		completed = append(completed, i)
	}

	return nil
}

func (s *Saga) compensate(ctx context.Context, completed []int, failedStep string, cause error) {
	// Compensation must still run when the caller's context is already cancelled.
	ctx = context.WithoutCancel(ctx)

	for j := len(completed) - 1; j >= 0; j-- {
		st := s.steps[completed[j]]
		if st.compensate == nil {
			continue
		}
		if err := st.compensate(ctx); err != nil {
			s.logger.Error("saga compensation failed",
				zap.String("saga", s.name),
				zap.String("step", st.name),
				zap.String("failed_step", failedStep),
				zap.NamedError("cause", cause),
				zap.Error(err),
			)
			if s.onFailure != nil {
				s.onFailure(ctx, CompensationFailure{
					Saga:       s.name,
					Step:       st.name,
					FailedStep: failedStep,
					Cause:      cause,
					Err:        err,
					OccurredAt: time.Now().UTC(),
				})
			}
			continue
		}
		s.logger.Info("saga step compensated",
			zap.String("saga", s.name),
			zap.String("step", st.name),
		)
	}
}
