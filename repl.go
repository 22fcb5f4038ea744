package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// REPL is the command dispatcher: it turns one line of input into a
// status message and, when output is enabled, a redrawn viewport.
// Deliberately a thin shell around the core transaction/scheduler.
type REPL struct {
	grid     *Grid
	ev       *Evaluator
	webhooks *WebhookDispatcher
	out      io.Writer
}

func NewREPL(grid *Grid, ev *Evaluator, webhooks *WebhookDispatcher, out io.Writer) *REPL {
	return &REPL{grid: grid, ev: ev, webhooks: webhooks, out: out}
}

// ProcessCommand dispatches a single trimmed-of-newline input line,
// mutating the grid under its write lock and returning the status
// message for the prompt line.
func (r *REPL) ProcessCommand(cmd string) string {
	r.grid.Lock()
	defer r.grid.Unlock()

	switch {
	case cmd == "w":
		r.grid.ScrollUp()
		return "ok"
	case cmd == "s":
		r.grid.ScrollDown()
		return "ok"
	case cmd == "a":
		r.grid.ScrollLeft()
		return "ok"
	case cmd == "d":
		r.grid.ScrollRight()
		return "ok"
	case strings.HasPrefix(cmd, "scroll_to"):
		return r.processScrollTo(cmd)
	case cmd == "disable_output":
		r.grid.OutputEnabled = false
		return "ok"
	case cmd == "enable_output":
		r.grid.OutputEnabled = true
		return "ok"
	case strings.HasPrefix(cmd, "webhook "):
		return r.processWebhook(cmd)
	case strings.Contains(cmd, "="):
		return r.processAssignment(cmd)
	default:
		return "unrecognized cmd"
	}
}

func (r *REPL) processScrollTo(cmd string) string {
	fields := strings.Fields(cmd)
	if len(fields) != 2 {
		return "Invalid command"
	}
	coord, ok := NameToCoord(fields[1])
	if !ok {
		return "Invalid cell"
	}
	if !r.grid.InBounds(coord) {
		return "Cell reference out of bounds"
	}
	r.grid.ScrollTo(coord)
	return "ok"
}

// processWebhook implements the supplemental `webhook <cell> <url>` /
// `webhook <cell> -` command: set or clear the URL notified whenever
// cell's value or status changes.
func (r *REPL) processWebhook(cmd string) string {
	if r.webhooks == nil {
		return "unrecognized cmd"
	}
	fields := strings.Fields(cmd)
	if len(fields) != 3 {
		return "Invalid command"
	}
	coord, ok := NameToCoord(fields[1])
	if !ok {
		return "Invalid cell"
	}
	if !r.grid.InBounds(coord) {
		return "Cell out of bounds"
	}
	url := fields[2]
	if url == "-" {
		url = ""
	}
	r.webhooks.SetURL(coord, url)
	return "ok"
}

func (r *REPL) processAssignment(cmd string) string {
	idx := strings.IndexByte(cmd, '=')
	cellName := cmd[:idx]
	formula := cmd[idx+1:]

	coord, ok := NameToCoord(cellName)
	if !ok {
		return "Invalid cell"
	}
	if !r.grid.InBounds(coord) {
		return "Cell out of bounds"
	}

	status, touched := r.grid.UpdateCell(r.ev, coord, formula)
	if len(touched) > 0 && r.webhooks != nil {
		snaps := make([]CellSnapshot, 0, len(touched))
		for _, c := range touched {
			snaps = append(snaps, r.grid.snapshotLocked(c))
		}
		r.webhooks.Notify(snaps)
	}
	return status
}

// Run drives the read-eval-print loop against in, writing the grid and
// prompt to r.out after every command in the format
// `[<elapsed_seconds.1>] (<status>) > `.
func (r *REPL) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)

	if r.grid.OutputEnabled {
		RenderGrid(r.out, r.grid, r.grid.TopRow, r.grid.LeftCol)
	}
	fmt.Fprintf(r.out, "[%.1f] (%s) > ", 0.0, "ok")

	for scanner.Scan() {
		cmd := scanner.Text()
		if cmd == "q" {
			return
		}

		start := time.Now()
		status := r.ProcessCommand(cmd)
		elapsed := time.Since(start).Seconds()

		if r.grid.OutputEnabled {
			RenderGrid(r.out, r.grid, r.grid.TopRow, r.grid.LeftCol)
		}
		fmt.Fprintf(r.out, "[%.1f] (%s) > ", elapsed, status)
	}
}
