// internal/config/normalize.go
package config

// Normalize replaces zero values with the reference configuration.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	def := Default()

	// ---- monitor ----
	if cfg.Monitor.CheckInterval == 0 {
		cfg.Monitor.CheckInterval = def.Monitor.CheckInterval
	}
	if cfg.Monitor.QuietInterval == 0 {
		cfg.Monitor.QuietInterval = def.Monitor.QuietInterval
	}
	if cfg.Monitor.RateThreshold == 0 {
		cfg.Monitor.RateThreshold = def.Monitor.RateThreshold
	}

	// ---- counter ----
	if cfg.Counter.Source == "" {
		cfg.Counter.Source = def.Counter.Source
	}
	if cfg.Counter.Interface == "" {
		cfg.Counter.Interface = def.Counter.Interface
	}
	if cfg.Counter.Path == "" {
		cfg.Counter.Path = def.Counter.Path
	}

	// ---- probe ----
	if cfg.Probe.Method == "" {
		cfg.Probe.Method = def.Probe.Method
	}
	if cfg.Probe.Command == "" {
		cfg.Probe.Command = def.Probe.Command
	}
	if cfg.Probe.Target == "" {
		cfg.Probe.Target = def.Probe.Target
	}
	if cfg.Probe.Timeout == 0 {
		cfg.Probe.Timeout = def.Probe.Timeout
	}

	// ---- modem ----
	if cfg.Modem.Address == "" {
		cfg.Modem.Address = def.Modem.Address
	}
	if cfg.Modem.Port == 0 {
		cfg.Modem.Port = def.Modem.Port
	}
	if cfg.Modem.DialTimeout == 0 {
		cfg.Modem.DialTimeout = def.Modem.DialTimeout
	}
	if cfg.Modem.SettleTime == 0 {
		cfg.Modem.SettleTime = def.Modem.SettleTime
	}

	// Metrics.Textfile stays empty unless configured.
}
