package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/completion"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/database"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
)

// recordingTimer fires immediately and remembers every requested wait.
type recordingTimer struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordingTimer) After(d time.Duration) <-chan time.Time {
	r.mu.Lock()
	r.delays = append(r.delays, d)
	r.mu.Unlock()
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

type countingCompleter struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	fn      func(ctx context.Context, call int) (string, error)
}

func (c *countingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	c.calls++
	call := c.calls
	c.prompts = append(c.prompts, prompt)
	c.mu.Unlock()
	return c.fn(ctx, call)
}

func createCodeReview(t *testing.T, ctx context.Context) *models.PromptTemplate {
	t.Helper()
	template, err := CreatePromptTemplate(ctx, models.TemplateDraft{
		Name:    "Code Review Assistant",
		Content: "Review this {{language}} code:\n{{code}}",
		Variables: []models.Variable{
			{Name: "language", Type: models.VariableTypeString, Required: true},
			{Name: "code", Type: models.VariableTypeString, Required: true},
		},
	})
	require.NoError(t, err)
	return template
}

func executionCount(t *testing.T, templateID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.DB.Model(&models.Execution{}).Where("prompt_template_id = ?", templateID).Count(&count).Error)
	return count
}

func TestExecuteSuccess(t *testing.T) {
	ctx, _ := setupTest(t)
	template := createCodeReview(t, ctx)

	completer := &countingCompleter{fn: func(context.Context, int) (string, error) {
		return "Looks good", nil
	}}
	executor := NewPromptExecutor(DefaultStore, completer, WithLogger(zap.NewNop()))

	record, err := executor.Execute(ctx, template.ID, map[string]any{"language": "Go", "code": "x := 1", "extra": true})
	require.NoError(t, err)

	assert.Equal(t, "Looks good", record.Result)
	assert.Equal(t, models.ExecutionStatusSucceeded, record.Status)
	assert.Empty(t, record.FallbackReason)
	assert.Equal(t, 1, record.Attempts)
	assert.Equal(t, []string{"Review this Go code:\nx := 1"}, completer.prompts)
	assert.Equal(t, int64(1), executionCount(t, template.ID))

	var stored models.Execution
	require.NoError(t, database.DB.First(&stored, "id = ?", record.ID).Error)
	assert.Equal(t, "Go", stored.Variables["language"])
}

func TestExecuteMissingRequiredVariables(t *testing.T) {
	ctx, _ := setupTest(t)
	template := createCodeReview(t, ctx)

	completer := &countingCompleter{fn: func(context.Context, int) (string, error) { return "x", nil }}
	executor := NewPromptExecutor(DefaultStore, completer, WithLogger(zap.NewNop()))

	_, err := executor.Execute(ctx, template.ID, map[string]any{})

	var missing *MissingRequiredVariablesError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"language", "code"}, missing.Names)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, 0, completer.calls)
	assert.Equal(t, int64(0), executionCount(t, template.ID))
}

func TestExecuteTemplateNotFound(t *testing.T) {
	ctx, _ := setupTest(t)
	executor := NewPromptExecutor(DefaultStore, completion.Disabled{}, WithLogger(zap.NewNop()))

	_, err := executor.Execute(ctx, "missing", nil)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestExecuteRetriesTransientFailuresThenFallsBack(t *testing.T) {
	ctx, _ := setupTest(t)
	template := createCodeReview(t, ctx)

	timer := &recordingTimer{}
	completer := &countingCompleter{fn: func(context.Context, int) (string, error) {
		return "", &completion.TransientError{Err: errors.New("503 service unavailable")}
	}}
	executor := NewPromptExecutor(DefaultStore, completer, WithTimer(timer), WithLogger(zap.NewNop()))

	record, err := executor.Execute(ctx, template.ID, map[string]any{"language": "Go", "code": "x"})
	require.NoError(t, err)

	assert.Equal(t, 4, completer.calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, timer.delays)
	assert.Equal(t, models.ExecutionStatusFallback, record.Status)
	assert.Equal(t, FallbackTransient, record.FallbackReason)
	assert.Equal(t, 4, record.Attempts)
	assert.Contains(t, record.Result, completion.FallbackMarker)
	assert.Equal(t, completion.Fallback(template.Name, FallbackTransient), record.Result)
	assert.Equal(t, int64(1), executionCount(t, template.ID))
}

func TestExecuteRecoversAfterTransientFailure(t *testing.T) {
	ctx, _ := setupTest(t)
	template := createCodeReview(t, ctx)

	timer := &recordingTimer{}
	completer := &countingCompleter{fn: func(_ context.Context, call int) (string, error) {
		if call < 3 {
			return "", errors.New("rate limit exceeded")
		}
		return "third time lucky", nil
	}}
	executor := NewPromptExecutor(DefaultStore, completer,
		WithTimer(timer),
		WithRetryBaseDelay(10*time.Millisecond),
		WithLogger(zap.NewNop()),
	)

	record, err := executor.Execute(ctx, template.ID, map[string]any{"language": "Go", "code": "x"})
	require.NoError(t, err)

	assert.Equal(t, "third time lucky", record.Result)
	assert.Equal(t, models.ExecutionStatusSucceeded, record.Status)
	assert.Equal(t, 3, record.Attempts)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, timer.delays)
}

func TestExecutePermanentFailureDoesNotRetry(t *testing.T) {
	ctx, _ := setupTest(t)
	template := createCodeReview(t, ctx)

	timer := &recordingTimer{}
	completer := &countingCompleter{fn: func(context.Context, int) (string, error) {
		return "", &completion.PermanentError{Err: errors.New("invalid api key")}
	}}
	executor := NewPromptExecutor(DefaultStore, completer, WithTimer(timer), WithLogger(zap.NewNop()))

	record, err := executor.Execute(ctx, template.ID, map[string]any{"language": "Go", "code": "x"})
	require.NoError(t, err)

	assert.Equal(t, 1, completer.calls)
	assert.Empty(t, timer.delays)
	assert.Equal(t, FallbackPermanent, record.FallbackReason)
	assert.Equal(t, models.ExecutionStatusFallback, record.Status)
	assert.Equal(t, int64(1), executionCount(t, template.ID))
}

func TestExecuteAttemptTimeout(t *testing.T) {
	ctx, _ := setupTest(t)
	template := createCodeReview(t, ctx)

	timer := &recordingTimer{}
	completer := &countingCompleter{fn: func(ctx context.Context, _ int) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	executor := NewPromptExecutor(DefaultStore, completer,
		WithTimer(timer),
		WithAttemptTimeout(20*time.Millisecond),
		WithLogger(zap.NewNop()),
	)

	record, err := executor.Execute(ctx, template.ID, map[string]any{"language": "Go", "code": "x"})
	require.NoError(t, err)

	assert.Equal(t, 1, completer.calls)
	assert.Equal(t, FallbackTimeout, record.FallbackReason)
	assert.Contains(t, record.Result, completion.FallbackMarker)
}

func TestExecuteUnconfigured(t *testing.T) {
	ctx, _ := setupTest(t)
	template := createCodeReview(t, ctx)

	executor := NewPromptExecutor(DefaultStore, nil, WithLogger(zap.NewNop()))
	record, err := executor.Execute(ctx, template.ID, map[string]any{"language": "Go", "code": "x"})
	require.NoError(t, err)

	assert.Equal(t, FallbackUnconfigured, record.FallbackReason)
	assert.Equal(t, 1, record.Attempts)
}

func TestExecuteCancelledStillRecords(t *testing.T) {
	ctx, _ := setupTest(t)
	template := createCodeReview(t, ctx)

	callCtx, cancel := context.WithCancel(ctx)
	completer := &countingCompleter{fn: func(context.Context, int) (string, error) {
		cancel()
		return "", &completion.TransientError{Err: errors.New("502 bad gateway")}
	}}
	executor := NewPromptExecutor(DefaultStore, completer, WithTimer(&recordingTimer{}), WithLogger(zap.NewNop()))

	record, err := executor.Execute(callCtx, template.ID, map[string]any{"language": "Go", "code": "x"})
	require.NoError(t, err)

	assert.Equal(t, FallbackCancelled, record.FallbackReason)
	assert.Equal(t, 1, completer.calls)
	assert.Equal(t, int64(1), executionCount(t, template.ID))
}

func TestExecutorDefault(t *testing.T) {
	SetExecutor(nil)
	assert.NotNil(t, Executor())

	e := NewPromptExecutor(DefaultStore, nil)
	SetExecutor(e)
	defer SetExecutor(nil)
	assert.Same(t, e, Executor())
}
