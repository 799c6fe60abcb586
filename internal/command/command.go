// Package command implements the applicant book commands: target resolution,
// the bulk mutations built on it and the derived views.
package command

import (
	"context"
	"errors"
	"time"

	"github.com/Veraticus/hireflow/internal/service"
	"github.com/Veraticus/hireflow/internal/store"
)

// Command errors. Each is returned wrapped in a common.UserError carrying the
// text shown to the user.
var (
	ErrInvalidTargeting  = errors.New("invalid targeting")
	ErrNoMatch           = errors.New("no matching applicant")
	ErrTooManyMatches    = errors.New("too many matching applicants")
	ErrDuplicateIdentity = errors.New("duplicate applicant")
	ErrPersistence       = errors.New("persistence failed")
	ErrInvalidCommand    = errors.New("invalid command")
)

// Kind identifies a command.
type Kind string

// Command kinds.
const (
	KindAdd     Kind = "add"
	KindDelete  Kind = "delete"
	KindEdit    Kind = "edit"
	KindRate    Kind = "rate"
	KindStatus  Kind = "status"
	KindSearch  Kind = "search"
	KindSort    Kind = "sort"
	KindSummary Kind = "summary"
	KindExport  Kind = "export"
	KindClear   Kind = "clear"
	KindExit    Kind = "exit"
	KindHelp    Kind = "help"
	KindList    Kind = "list"
	KindAvatar  Kind = "avatar"
)

// Mutates reports whether commands of this kind change the book and must be
// persisted afterwards.
func (k Kind) Mutates() bool {
	switch k {
	case KindAdd, KindDelete, KindEdit, KindRate, KindStatus, KindClear, KindSort, KindAvatar:
		return true
	default:
		return false
	}
}

// Result is the outcome of a command.
type Result struct {
	Feedback string
	// ShowHelp asks the front end to display the help text.
	ShowHelp bool
	// Exit asks the front end to end the session.
	Exit bool
	// ShowView asks the front end to redisplay the current view.
	ShowView bool
	// NeedsConfirmation is set when Feedback is a prompt and the command is
	// waiting for a yes/no answer.
	NeedsConfirmation bool
}

// Env is what commands act on.
type Env struct {
	Store    store.Store
	Exporter service.Exporter
	// Now defaults to time.Now.
	Now func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Command is a parsed, ready to run command.
type Command interface {
	Kind() Kind
	Execute(ctx context.Context, env *Env) (Result, error)
}

// Gated is implemented by commands that ask for confirmation before they run
// unless forced.
type Gated interface {
	Command
	Forced() bool
	// WithForced returns a copy of the command that skips confirmation.
	WithForced() Gated
	// Confirmation resolves the command's targets and builds the prompt shown
	// to the user. It fails with the same error Execute would report.
	Confirmation(ctx context.Context, env *Env) (string, error)
}
