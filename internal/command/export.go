package command

import (
	"context"
	"fmt"

	"github.com/Veraticus/hireflow/internal/common"
)

// ExportCommand writes the applicants currently on display to Path.
type ExportCommand struct {
	Path string
}

// Kind implements Command.
func (c ExportCommand) Kind() Kind { return KindExport }

// Execute implements Command.
func (c ExportCommand) Execute(ctx context.Context, env *Env) (Result, error) {
	if env.Exporter == nil {
		return Result{}, common.NewUserError(MessageExportUnavailable, ErrInvalidCommand)
	}

	view := env.Store.View()
	if err := env.Exporter.Export(ctx, c.Path, view); err != nil {
		return Result{}, common.NewUserError(
			fmt.Sprintf("Could not export applicants to %s", c.Path), err)
	}
	return Result{Feedback: fmt.Sprintf(MessageExported, len(view), c.Path)}, nil
}
