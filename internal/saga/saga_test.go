package saga

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func record(calls *[]string, name string, err error) Action {
	return func(ctx context.Context) error {
		*calls = append(*calls, name)
		return err
	}
}

func TestExecute_AllStepsSucceed(t *testing.T) {
	t.Parallel()

	var calls []string
	err := New("test", nil).
		AddStep("a", record(&calls, "a", nil), record(&calls, "undo-a", nil)).
		AddStep("b", record(&calls, "b", nil), record(&calls, "undo-b", nil)).
		Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestExecute_CompensatesCompletedStepsInReverse(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var calls []string
	err := New("test", nil).
		AddStep("a", record(&calls, "a", nil), record(&calls, "undo-a", nil)).
		AddStep("b", record(&calls, "b", nil), record(&calls, "undo-b", nil)).
		AddStep("c", record(&calls, "c", boom), record(&calls, "undo-c", nil)).
		Execute(context.Background())

	assert.Same(t, boom, err)
	assert.Equal(t, []string{"a", "b", "c", "undo-b", "undo-a"}, calls)
}

func TestExecute_FirstStepFailureCompensatesNothing(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var calls []string
	err := New("test", nil).
		AddStep("a", record(&calls, "a", boom), record(&calls, "undo-a", nil)).
		AddStep("b", record(&calls, "b", nil), nil).
		Execute(context.Background())

	assert.Same(t, boom, err)
	assert.Equal(t, []string{"a"}, calls)
}

func TestExecute_CompensationFailureKeepsOriginalError(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	boom := errors.New("profile store down")
	undoErr := errors.New("identity store down")

	var failures []CompensationFailure
	var calls []string
	err := New("signup", zap.New(core)).
		AddStep("create_account", record(&calls, "create", nil), record(&calls, "delete", undoErr)).
		AddStep("create_profile", record(&calls, "profile", boom), nil).
		OnCompensationFailure(func(ctx context.Context, f CompensationFailure) {
			failures = append(failures, f)
		}).
		Execute(context.Background())

	assert.Same(t, boom, err)
	assert.Equal(t, []string{"create", "profile", "delete"}, calls)

	require.Len(t, failures, 1)
	assert.Equal(t, "signup", failures[0].Saga)
	assert.Equal(t, "create_account", failures[0].Step)
	assert.Equal(t, "create_profile", failures[0].FailedStep)
	assert.Same(t, boom, failures[0].Cause)
	assert.Same(t, undoErr, failures[0].Err)

	assert.Equal(t, 1, logs.FilterMessage("saga compensation failed").Len())
}

func TestExecute_CompensationRunsAfterCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var compensatedWith error

	err := New("test", nil).
		AddStep("a", func(context.Context) error { return nil }, func(ctx context.Context) error {
			compensatedWith = ctx.Err()
			return nil
		}).
		AddStep("b", func(context.Context) error {
			cancel()
			return context.Canceled
		}, nil).
		Execute(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, compensatedWith)
}
