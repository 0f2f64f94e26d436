// Package action groups the jobs shipped with xqueue.
package action

import (
	"log/slog"

	"github.com/viant/xqueue/model/types"
	"github.com/viant/xqueue/service/action/exec"
	"github.com/viant/xqueue/service/action/nop"
	"github.com/viant/xqueue/service/action/printer"
)

// Builtin returns the nop, printer and exec jobs.
func Builtin(logger *slog.Logger) []types.Job {
	return []types.Job{
		nop.New(),
		printer.New(nil),
		exec.New(logger),
	}
}
