package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/completion"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/placeholder"
	"github.com/vbitzceo/voidbitzPromptWorkshop/pkg/logger"
)

// Reasons recorded on fallback executions.
const (
	FallbackTransient    = "transient"
	FallbackPermanent    = "permanent"
	FallbackTimeout      = "timeout"
	FallbackCancelled    = "cancelled"
	FallbackUnconfigured = "unconfigured"
)

const (
	DefaultAttemptTimeout = 2 * time.Minute
	DefaultRetryBaseDelay = time.Second
	DefaultMaxRetries     = 3
)

// PromptExecutor runs templates against a completion provider. Provider
// failures never fail an execution: they end in a recorded fallback.
type PromptExecutor struct {
	store          Store
	completer      completion.Completer
	attemptTimeout time.Duration
	baseDelay      time.Duration
	maxRetries     int
	timer          retry.Timer
	log            *zap.Logger
}

type ExecutorOption func(*PromptExecutor)

// WithAttemptTimeout bounds each call to the provider.
func WithAttemptTimeout(d time.Duration) ExecutorOption {
	return func(e *PromptExecutor) { e.attemptTimeout = d }
}

// WithRetryBaseDelay sets the first backoff wait; later waits double it.
func WithRetryBaseDelay(d time.Duration) ExecutorOption {
	return func(e *PromptExecutor) { e.baseDelay = d }
}

func WithMaxRetries(n int) ExecutorOption {
	return func(e *PromptExecutor) { e.maxRetries = n }
}

// WithTimer replaces the clock used for backoff waits.
func WithTimer(t retry.Timer) ExecutorOption {
	return func(e *PromptExecutor) { e.timer = t }
}

func WithLogger(l *zap.Logger) ExecutorOption {
	return func(e *PromptExecutor) { e.log = l }
}

func NewPromptExecutor(store Store, completer completion.Completer, opts ...ExecutorOption) *PromptExecutor {
	e := &PromptExecutor{
		store:          store,
		completer:      completer,
		attemptTimeout: DefaultAttemptTimeout,
		baseDelay:      DefaultRetryBaseDelay,
		maxRetries:     DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.completer == nil {
		e.completer = completion.Disabled{}
	}
	if e.log == nil {
		e.log = logger.Named("executor")
	}
	if e.maxRetries < 0 {
		e.maxRetries = 0
	}
	return e
}

// CheckRequiredVariables returns a MissingRequiredVariablesError naming every
// required variable that has no key in values.
func CheckRequiredVariables(vars []models.Variable, values map[string]any) error {
	var missing []string
	for _, v := range vars {
		if !v.Required {
			continue
		}
		if _, ok := values[v.Name]; !ok {
			missing = append(missing, v.Name)
		}
	}
	if len(missing) > 0 {
		return &MissingRequiredVariablesError{Names: missing}
	}
	return nil
}

// Execute substitutes values into the template, asks the provider for a
// completion and appends exactly one execution record. It fails only when the
// template is missing, required variables are absent or the record cannot be
// written.
func (e *PromptExecutor) Execute(ctx context.Context, templateID string, values map[string]any) (*models.Execution, error) {
	template, err := e.store.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if err := CheckRequiredVariables(template.VariableList(), values); err != nil {
		return nil, err
	}

	prompt := placeholder.Substitute(template.Content, values)
	outcome := e.invoke(ctx, template.Name, prompt)

	if values == nil {
		values = map[string]any{}
	}
	record := &models.Execution{
		PromptTemplateID: template.ID,
		Variables:        models.JSON(values),
		Result:           outcome.result,
		Status:           models.ExecutionStatusSucceeded,
		Attempts:         outcome.attempts,
	}
	if outcome.fallbackReason != "" {
		record.Status = models.ExecutionStatusFallback
		record.FallbackReason = outcome.fallbackReason
	}

	// The record is written even when the caller has gone away.
	if err := e.store.AppendExecution(context.WithoutCancel(ctx), record); err != nil {
		return nil, fmt.Errorf("record execution: %w", err)
	}
	return record, nil
}

type invocation struct {
	result         string
	fallbackReason string
	attempts       int
}

func (e *PromptExecutor) invoke(ctx context.Context, templateName, prompt string) invocation {
	var out invocation
	var timedOut bool

	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(uint(e.maxRetries + 1)),
		retry.Delay(e.baseDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			e.log.Warn("Completion attempt failed",
				zap.Uint("attempt", n+1),
				zap.Int("max_attempts", e.maxRetries+1),
				zap.Error(err),
			)
		}),
	}
	if e.timer != nil {
		opts = append(opts, retry.WithTimer(e.timer))
	}

	err := retry.Do(func() error {
		out.attempts++
		attemptCtx, cancel := context.WithTimeout(ctx, e.attemptTimeout)
		defer cancel()

		result, err := e.completer.Complete(attemptCtx, prompt)
		if err == nil {
			out.result = result
			return nil
		}
		switch {
		case ctx.Err() != nil:
			return retry.Unrecoverable(err)
		case errors.Is(attemptCtx.Err(), context.DeadlineExceeded):
			timedOut = true
			return retry.Unrecoverable(err)
		case !completion.IsTransient(err):
			return retry.Unrecoverable(err)
		}
		return err
	}, opts...)

	if err == nil {
		return out
	}

	switch {
	case errors.Is(err, completion.ErrNotConfigured):
		out.fallbackReason = FallbackUnconfigured
	case timedOut:
		out.fallbackReason = FallbackTimeout
	case ctx.Err() != nil:
		out.fallbackReason = FallbackCancelled
	case completion.IsTransient(err):
		out.fallbackReason = FallbackTransient
	default:
		out.fallbackReason = FallbackPermanent
	}

	e.log.Info("Completion unavailable, using fallback",
		zap.String("template", templateName),
		zap.String("reason", out.fallbackReason),
		zap.Int("attempts", out.attempts),
		zap.Error(err),
	)
	out.result = completion.Fallback(templateName, out.fallbackReason)
	return out
}
