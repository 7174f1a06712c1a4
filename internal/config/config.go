// internal/config/config.go
package config

import "time"

// Config is the full daemon configuration.
// Zero values mean "use the reference value"; see Normalize.
type Config struct {
	Monitor MonitorConfig `yaml:"monitor"`
	Counter CounterConfig `yaml:"counter"`
	Probe   ProbeConfig   `yaml:"probe"`
	Modem   ModemConfig   `yaml:"modem"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ---- MONITOR ----

type MonitorConfig struct {
	// CheckInterval is the routine idle between rate samples.
	CheckInterval time.Duration `yaml:"check_interval"`
	// QuietInterval is the idle after a quiet link answered the probe.
	QuietInterval time.Duration `yaml:"quiet_interval"`
	// RateThreshold is the minimum RX bytes per check interval.
	// Non-zero because ARP chatter keeps arriving while the modem is down.
	// Like every other field, 0 means the reference value (20480); a
	// threshold of 0 would never probe, so it cannot be configured.
	RateThreshold uint64 `yaml:"rate_threshold"`
}

// ---- COUNTER SOURCE ----

const (
	SourceProcfs  = "procfs"
	SourceNetlink = "netlink"
)

type CounterConfig struct {
	Source    string `yaml:"source"`
	Interface string `yaml:"interface"`
	Path      string `yaml:"path"` // procfs only
}

// ---- PROBE ----

const (
	ProbeExec = "exec"
	ProbeICMP = "icmp"
)

type ProbeConfig struct {
	Method  string `yaml:"method"`
	Command string `yaml:"command"` // exec only
	// Target must be a literal IP so the probe never depends on DNS.
	Target  string        `yaml:"target"`
	Timeout time.Duration `yaml:"timeout"`
}

// ---- MODEM ----

type ModemConfig struct {
	Address     string        `yaml:"address"`
	Port        uint16        `yaml:"port"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	// SettleTime is the modem's reboot time, reused as the retry backoff.
	SettleTime time.Duration `yaml:"settle_time"`
}

// ---- METRICS ----

type MetricsConfig struct {
	// Textfile, if set, is rewritten after every cycle in the
	// node_exporter textfile collector format.
	Textfile string `yaml:"textfile"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Monitor: MonitorConfig{
			CheckInterval: 5 * time.Second,
			QuietInterval: 300 * time.Second,
			RateThreshold: 20480,
		},
		Counter: CounterConfig{
			Source:    SourceProcfs,
			Interface: "eth0",
			Path:      "/proc/net/dev",
		},
		Probe: ProbeConfig{
			Method:  ProbeExec,
			Command: "/bin/ping",
			Target:  "64.233.167.99",
			Timeout: 5 * time.Second,
		},
		Modem: ModemConfig{
			Address:     "192.168.100.1",
			Port:        80,
			DialTimeout: 5 * time.Second,
			SettleTime:  120 * time.Second,
		},
	}
}
