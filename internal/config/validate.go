// internal/config/validate.go
package config

import (
	"fmt"
	"net"
	"strings"

	"go.uber.org/multierr"
)

// Validate checks configuration correctness.
// It performs declarative validation only and reports every problem found.
// It MUST NOT mutate configuration. Zero values are accepted (Normalize fills them).
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	var errs error

	// ------------------------------------------------------------
	// MONITOR
	// ------------------------------------------------------------

	if cfg.Monitor.CheckInterval < 0 {
		errs = multierr.Append(errs, fmt.Errorf("monitor.check_interval must be > 0, got %s", cfg.Monitor.CheckInterval))
	}
	if cfg.Monitor.QuietInterval < 0 {
		errs = multierr.Append(errs, fmt.Errorf("monitor.quiet_interval must be > 0, got %s", cfg.Monitor.QuietInterval))
	}

	// ------------------------------------------------------------
	// COUNTER
	// ------------------------------------------------------------

	switch cfg.Counter.Source {
	case "", SourceProcfs, SourceNetlink:
	default:
		errs = multierr.Append(errs, fmt.Errorf("counter.source %q: want %q or %q", cfg.Counter.Source, SourceProcfs, SourceNetlink))
	}
	if strings.ContainsAny(cfg.Counter.Interface, ": \t") {
		errs = multierr.Append(errs, fmt.Errorf("counter.interface %q: must not contain ':' or whitespace", cfg.Counter.Interface))
	}

	// ------------------------------------------------------------
	// PROBE
	// ------------------------------------------------------------

	switch cfg.Probe.Method {
	case "", ProbeExec, ProbeICMP:
	default:
		errs = multierr.Append(errs, fmt.Errorf("probe.method %q: want %q or %q", cfg.Probe.Method, ProbeExec, ProbeICMP))
	}
	if cfg.Probe.Target != "" && net.ParseIP(cfg.Probe.Target) == nil {
		errs = multierr.Append(errs, fmt.Errorf("probe.target %q: must be a literal IP address", cfg.Probe.Target))
	}
	if cfg.Probe.Timeout < 0 {
		errs = multierr.Append(errs, fmt.Errorf("probe.timeout must be > 0, got %s", cfg.Probe.Timeout))
	}

	// ------------------------------------------------------------
	// MODEM
	// ------------------------------------------------------------

	if cfg.Modem.Address != "" {
		ip := net.ParseIP(cfg.Modem.Address)
		if ip == nil || ip.To4() == nil {
			errs = multierr.Append(errs, fmt.Errorf("modem.address %q: must be a literal IPv4 address", cfg.Modem.Address))
		}
	}
	if cfg.Modem.DialTimeout < 0 {
		errs = multierr.Append(errs, fmt.Errorf("modem.dial_timeout must be > 0, got %s", cfg.Modem.DialTimeout))
	}
	if cfg.Modem.SettleTime < 0 {
		errs = multierr.Append(errs, fmt.Errorf("modem.settle_time must be > 0, got %s", cfg.Modem.SettleTime))
	}

	return errs
}
