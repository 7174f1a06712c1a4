// internal/daemon/daemon.go
package daemon

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// envMarker tells a re-executed copy that it is already detached.
const envMarker = "_LINKD_DETACHED"

// IsDetached reports whether this process was started by Detach.
func IsDetached() bool {
	return os.Getenv(envMarker) == "1"
}

// Detacher starts a copy of the running program in a new session with its
// working directory at / and standard streams on the null device.
// A Go process cannot fork safely, so the copy is a fresh exec.
type Detacher struct {
	Executable func() (string, error)
	Environ    func() []string
	Start      func(*exec.Cmd) error
	NullDevice string
}

// New returns a Detacher for the current process.
func New() *Detacher {
	return &Detacher{
		Executable: os.Executable,
		Environ:    os.Environ,
		Start:      (*exec.Cmd).Start,
		NullDevice: os.DevNull,
	}
}

// Detach launches the copy with args and returns its pid. The caller is
// expected to exit afterwards.
func (d *Detacher) Detach(args []string) (int, error) {
	if IsDetached() {
		return 0, errors.New("daemon: already detached")
	}

	null, err := os.OpenFile(d.NullDevice, os.O_RDWR, 0)
	if err != nil {
		return 0, fmt.Errorf("daemon: open %s: %w", d.NullDevice, err)
	}
	defer null.Close()

	cmd, err := d.command(args, null)
	if err != nil {
		return 0, err
	}

	if err := d.Start(cmd); err != nil {
		return 0, fmt.Errorf("daemon: start %s: %w", cmd.Path, err)
	}
	if cmd.Process == nil {
		return 0, nil
	}
	return cmd.Process.Pid, nil
}

func (d *Detacher) command(args []string, null *os.File) (*exec.Cmd, error) {
	exe, err := d.Executable()
	if err != nil {
		return nil, fmt.Errorf("daemon: locate executable: %w", err)
	}

	cmd := exec.Command(exe, args...)
	cmd.Dir = "/"
	cmd.Env = append(d.Environ(), envMarker+"=1")
	cmd.Stdin = null
	cmd.Stdout = null
	cmd.Stderr = null
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	return cmd, nil
}
