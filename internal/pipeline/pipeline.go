// Package pipeline runs the build and launch phases of a benchmark as
// explicit sequential subprocesses, each a distinct failure point.
package pipeline

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Step is one subprocess invocation, run in Dir.
type Step struct {
	Name    string
	Dir     string
	Command string
	Args    []string
}

// Pipeline executes steps strictly in order, stopping at the first
// failure.
type Pipeline struct {
	steps []Step
	log   zerolog.Logger
}

// New returns a Pipeline over the given steps.
func New(steps []Step, log zerolog.Logger) *Pipeline {
	return &Pipeline{steps: steps, log: log}
}

// Run executes every step in order. The first failing step aborts the
// pipeline; the tail of its combined output is logged for diagnosis and
// the returned error names the step that broke.
func (p *Pipeline) Run(ctx context.Context) error {
	for _, step := range p.steps {
		p.log.Info().Str("step", step.Name).Str("command", step.Command).Msg("running step")

		start := time.Now()
		output, err := runStep(ctx, step)
		if err != nil {
			if tail := outputTail(output); tail != "" {
				p.log.Error().Str("step", step.Name).Msgf("step output:\n%s", tail)
			}
			return errors.Wrapf(err, "%s step failed (%s)", step.Name, step.Command)
		}

		p.log.Info().Str("step", step.Name).Dur("took", time.Since(start)).Msg("step completed")
	}
	return nil
}

func runStep(ctx context.Context, step Step) (string, error) {
	cmd := exec.CommandContext(ctx, step.Command, step.Args...)
	cmd.Dir = step.Dir

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	return buf.String(), err
}

// Launch runs a single step streaming its combined output to w, for
// long-running processes whose output belongs in a log file rather than
// a buffer. It blocks until the process exits and returns how long it
// ran. Context cancellation kills the process and is reported as an
// interruption, not a process failure.
func Launch(ctx context.Context, step Step, w io.Writer, log zerolog.Logger) (time.Duration, error) {
	log.Info().Str("step", step.Name).Str("command", step.Command).Strs("args", step.Args).Msg("launching")

	cmd := exec.CommandContext(ctx, step.Command, step.Args...)
	cmd.Dir = step.Dir
	cmd.Stdout = w
	cmd.Stderr = w

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return elapsed, errors.Wrapf(ctxErr, "%s interrupted after %s", step.Name, elapsed.Round(time.Second))
	}
	if err != nil {
		return elapsed, errors.Wrapf(err, "%s exited abnormally after %s", step.Name, elapsed.Round(time.Second))
	}

	log.Info().Str("step", step.Name).Dur("took", elapsed).Msg("process completed")
	return elapsed, nil
}

// outputTail returns the last chunk of combined output, enough to show
// why a step failed without replaying an entire build log.
func outputTail(s string) string {
	const max = 2000
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max:]
}
