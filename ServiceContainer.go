package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UsageError is returned by BuildContainer when the command line doesn't
// carry exactly two positive-integer positional arguments.
const UsageMessage = "usage: intsheet <rows> <cols>"

// Container wires every collaborator together the way the teacher's
// ServiceContainer wires its database/repository/router: one
// Build...-style constructor, fail fast on bad input.
type Container struct {
	Grid              *Grid
	Evaluator         *Evaluator
	WebhookDispatcher *WebhookDispatcher
	REPL              *REPL
	Router            *gin.Engine
}

// BuildContainer parses the required positional (rows, cols) arguments
// and constructs the grid, evaluator, webhook dispatcher, REPL and
// monitoring router. Both arguments must parse as positive integers;
// anything else is a usage error.
func BuildContainer(args []string, out io.Writer) (*Container, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%s", UsageMessage)
	}

	rows, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: invalid row count %q", UsageMessage, args[0])
	}
	cols, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("%s: invalid column count %q", UsageMessage, args[1])
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s: dimensions must be positive, got %dx%d", UsageMessage, rows, cols)
	}

	container := &Container{}
	container.Grid = NewGrid(rows, cols)
	container.Evaluator = NewEvaluator(container.Grid)
	container.WebhookDispatcher = NewWebhookDispatcher()
	container.REPL = NewREPL(container.Grid, container.Evaluator, container.WebhookDispatcher, out)
	container.Router = SetupRouter(container.Grid)

	return container, nil
}
