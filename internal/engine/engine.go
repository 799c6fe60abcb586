// Package engine runs command lines against the applicant book, holding
// destructive commands until the user confirms them.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/hireflow/internal/command"
	"github.com/Veraticus/hireflow/internal/common"
	"github.com/Veraticus/hireflow/internal/model"
	"github.com/Veraticus/hireflow/internal/parser"
	"github.com/Veraticus/hireflow/internal/service"
	"github.com/Veraticus/hireflow/internal/store"
)

// ParseFunc turns a raw line into a command.
type ParseFunc func(line string) (command.Command, error)

// Config holds optional collaborators for the engine.
type Config struct {
	Exporter service.Exporter
	Parse    ParseFunc
	Now      func() time.Time
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Parse: parser.Parse,
		Now:   time.Now,
	}
}

// Engine is one user session over an applicant book. It is not safe for
// concurrent use; front ends call it from a single goroutine.
type Engine struct {
	env       *command.Env
	persister service.Persister
	parse     ParseFunc
	gate      Gate
}

// New creates an engine with the default parser. persister may be nil for a
// session that is never saved.
func New(s store.Store, persister service.Persister) *Engine {
	return NewWithConfig(s, persister, DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(s store.Store, persister service.Persister, config Config) *Engine {
	if config.Parse == nil {
		config.Parse = parser.Parse
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Engine{
		env: &command.Env{
			Store:    s,
			Exporter: config.Exporter,
			Now:      config.Now,
		},
		persister: persister,
		parse:     config.Parse,
	}
}

// Store returns the book the engine operates on.
func (e *Engine) Store() store.Store {
	return e.env.Store
}

// State reports whether a command is waiting for confirmation.
func (e *Engine) State() GateState {
	return e.gate.State()
}

// Loader reads a saved applicant book.
type Loader interface {
	LoadApplicants(ctx context.Context) ([]model.Applicant, error)
}

// Load replaces the book with applicants read from l.
func (e *Engine) Load(ctx context.Context, l Loader) error {
	applicants, err := l.LoadApplicants(ctx)
	if err != nil {
		return fmt.Errorf("failed to load applicants: %w", err)
	}
	if err := e.env.Store.Reset(applicants); err != nil {
		return fmt.Errorf("failed to fill applicant book: %w", err)
	}
	slog.Info("Loaded applicant book", "count", len(applicants))
	return nil
}

// Execute handles one line of user input.
//
// While a command awaits confirmation the line is only an answer: "yes" runs
// the command forced, anything else cancels it. Either way the gate is empty
// afterwards. Otherwise the line is parsed; a gated, unforced command with
// resolvable targets is parked and its prompt returned with
// NeedsConfirmation set.
func (e *Engine) Execute(ctx context.Context, line string) (command.Result, error) {
	if pending, ok := e.gate.Take(); ok {
		if !Confirms(line) {
			slog.Debug("Pending command cancelled", "kind", pending.Kind())
			return command.Result{Feedback: command.MessageCancelled}, nil
		}
		return e.run(ctx, pending.WithForced())
	}

	cmd, err := e.parse(line)
	if err != nil {
		return command.Result{}, err
	}

	if gated, ok := cmd.(command.Gated); ok && !gated.Forced() {
		prompt, err := gated.Confirmation(ctx, e.env)
		if err == nil {
			e.gate.Park(gated)
			slog.Debug("Awaiting confirmation", "kind", gated.Kind())
			return command.Result{Feedback: prompt, NeedsConfirmation: true}, nil
		}
		// Execute reports the same resolution failure.
		slog.Debug("Confirmation skipped", "kind", gated.Kind(), "error", err)
	}

	return e.run(ctx, cmd)
}

// run executes cmd and persists the book after a successful mutation. A
// failed save keeps the in-memory change and returns the result together
// with an ErrPersistence error.
func (e *Engine) run(ctx context.Context, cmd command.Command) (command.Result, error) {
	slog.Debug("Executing command", "kind", cmd.Kind())

	result, err := cmd.Execute(ctx, e.env)
	if err != nil {
		return command.Result{}, err
	}

	if cmd.Kind().Mutates() && e.persister != nil {
		if err := e.persister.SaveApplicants(ctx, e.env.Store.All()); err != nil {
			common.LogError(err, "Failed to persist applicant book", common.Fields{"kind": string(cmd.Kind())})
			return result, common.NewUserError(command.MessagePersistFailed,
				fmt.Errorf("%w: %w", command.ErrPersistence, err))
		}
	}
	return result, nil
}
