// internal/probe/exec.go
package probe

import (
	"context"
	"errors"
	"os/exec"
	"syscall"

	"github.com/tamzrod/linkd/internal/fault"
)

// Result is the structured outcome of one external check.
type Result struct {
	Exited   bool // terminated by exit(2), not by a signal
	ExitCode int  // -1 unless Exited
	Signal   syscall.Signal
}

// Success reports a normal exit with status 0.
func (r Result) Success() bool {
	return r.Exited && r.ExitCode == 0
}

// Runner starts an executable and waits for it.
// The error return is reserved for failing to start or reap the process;
// a process that ran and failed is reported through Result.
type Runner interface {
	Run(name string, args ...string) (Result, error)
}

// ExecRunner runs processes with os/exec. Standard streams are attached to
// the null device.
type ExecRunner struct{}

// Run starts name and waits for it to exit.
func (ExecRunner) Run(name string, args ...string) (Result, error) {
	cmd := exec.Command(name, args...)

	if err := cmd.Start(); err != nil {
		return Result{}, err
	}

	err := cmd.Wait()
	state := cmd.ProcessState
	if state == nil {
		return Result{}, err
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return Result{}, err
	}

	res := Result{Exited: state.Exited(), ExitCode: state.ExitCode()}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		res.Signal = ws.Signal()
	}
	return res, nil
}

// ExecProber runs an external reachability check (normally ping) and
// reads nothing but its exit status.
type ExecProber struct {
	Command string
	Args    []string
	Runner  Runner
}

// NewExecProber builds the default ping prober.
func NewExecProber(command string, args []string) *ExecProber {
	return &ExecProber{Command: command, Args: args, Runner: ExecRunner{}}
}

// IsUp blocks until the check finishes; the check bounds its own runtime.
// A cancelled ctx prevents the spawn but never interrupts a running check.
func (p *ExecProber) IsUp(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	res, err := p.Runner.Run(p.Command, p.Args...)
	if err != nil {
		return false, fault.Attr(fault.Wrapf(err, fault.KindFatal, "unable to run %s", p.Command), "command", p.Command)
	}
	return res.Success(), nil
}
