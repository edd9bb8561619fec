package orchestration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gatoreducator/gatorgrade/internal/checks"
	"github.com/gatoreducator/gatorgrade/internal/models"
)

// Resolver looks up a check by type name. [*checks.Registry] implements it.
type Resolver interface {
	Resolve(name string) (checks.Check, error)
}

// Invoker runs a single check spec and converts every kind of failure into an
// [models.Outcome]. It never returns an error or lets a panic escape.
type Invoker struct {
	resolver Resolver
}

// NewInvoker creates an [Invoker] that resolves check types with resolver.
func NewInvoker(resolver Resolver) *Invoker {
	return &Invoker{resolver: resolver}
}

// Invoke runs spec and returns its outcome.
func (inv *Invoker) Invoke(ctx context.Context, spec models.CheckSpec) (outcome models.Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("check panicked: %v", r)
			outcome = models.NewErrorOutcome(spec, models.ErrorKindUnknown, err.Error())
			logCheckError(spec, models.ErrorKindUnknown, err)
		}
		outcome.DurationMs = time.Since(start).Milliseconds()
	}()

	check, err := inv.resolver.Resolve(spec.CheckType)
	if err != nil {
		return inv.errorOutcome(spec, err)
	}

	result, err := check.Run(ctx, spec.Arguments)
	if err != nil {
		return inv.errorOutcome(spec, err)
	}

	slog.Debug("Check finished", "description", spec.DisplayName(), "check", spec.CheckType, "passed", result.Passed)
	return models.NewOutcome(spec, result.Passed, result.Diagnostic)
}

func (inv *Invoker) errorOutcome(spec models.CheckSpec, err error) models.Outcome {
	kind := classifyError(err)
	logCheckError(spec, kind, err)
	return models.NewErrorOutcome(spec, kind, err.Error())
}

// classifyError maps an error returned by a check (or the registry) to an
// [models.ErrorKind].
func classifyError(err error) models.ErrorKind {
	switch {
	case err == nil:
		return models.ErrorKindNone
	case errors.Is(err, checks.ErrInvalidCheck):
		return models.ErrorKindInvalidCheck
	case errors.Is(err, checks.ErrInvalidSystemArguments):
		return models.ErrorKindInvalidSystemArguments
	case errors.Is(err, checks.ErrInvalidArguments):
		return models.ErrorKindInvalidArguments
	default:
		return models.ErrorKindUnknown
	}
}

func logCheckError(spec models.CheckSpec, kind models.ErrorKind, err error) {
	slog.Error("Check could not run",
		"description", spec.DisplayName(),
		"check", spec.CheckType,
		"kind", kind.String(),
		"errorType", fmt.Sprintf("%T", err),
		"error", err.Error(),
	)
}
