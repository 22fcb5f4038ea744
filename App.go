package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gin-gonic/gin"
)

const ExitCodeMainError = 1

// ListenAddr is the monitoring API's default bind address; override with
// INTSHEET_HTTP_ADDR.
const ListenAddr = ":8080"

// RunApp builds the container from args, starts the webhook dispatcher
// and the monitoring API on a background goroutine, then runs the REPL
// against in until it reaches "q" or EOF.
func RunApp(args []string, in io.Reader, out io.Writer) error {
	gin.SetMode(gin.ReleaseMode)

	container, err := BuildContainer(args, out)
	if err != nil {
		return err
	}

	container.WebhookDispatcher.Start()
	defer container.WebhookDispatcher.Close()

	addr := os.Getenv("INTSHEET_HTTP_ADDR")
	if addr == "" {
		addr = ListenAddr
	}
	go func() {
		if err := container.Router.Run(addr); err != nil {
			fmt.Fprintf(os.Stderr, "monitoring API stopped: %s\n", err)
		}
	}()

	container.REPL.Run(in)
	return nil
}

func HandleExitError(errStream io.Writer, err error) int {
	if err != nil {
		_, _ = fmt.Fprintln(errStream, err)
		return ExitCodeMainError
	}

	return 0
}
