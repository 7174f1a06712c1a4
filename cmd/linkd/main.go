// cmd/linkd/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/tamzrod/linkd/internal/config"
	"github.com/tamzrod/linkd/internal/daemon"
	"github.com/tamzrod/linkd/internal/fault"
	"github.com/tamzrod/linkd/internal/logging"
)

// version is stamped at link time: -ldflags "-X main.version=1.2.0".
var version = ""

var (
	daemonize  bool
	configPath string
	debugLog   bool
)

// errLogged marks an error the logger has already reported.
var errLogged = errors.New("logged")

func init() {
	rootCmd.Flags().BoolVarP(&daemonize, "daemon", "d", false,
		"detach from the terminal and log to syslog")
	rootCmd.Flags().BoolVar(&daemonize, "daemonize", false,
		"same as --daemon")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "",
		"YAML file overriding the built-in settings")
	rootCmd.Flags().BoolVar(&debugLog, "debug", false,
		"log every sample and probe")
	rootCmd.Flags().BoolP("version", "V", false, "print version and exit")

	rootCmd.Version = buildVersion()
}

var rootCmd = &cobra.Command{
	Use:   "linkd",
	Short: "Reset the cable modem when the internet link dies",
	Long: `linkd watches the received-byte counter of the WAN interface. When
traffic drops below a threshold it pings a well-known host, and if that
fails it tells the cable modem to restart through its web interface.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errLogged) {
			fmt.Fprintf(os.Stderr, "linkd: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if unix.Getuid() == 0 {
		fmt.Fprintln(os.Stderr, "linkd: warning: running as root is not recommended")
	}

	// ---- detach ----
	if daemonize && !daemon.IsDetached() {
		pid, err := daemon.New().Detach(os.Args[1:])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "linkd: detached, pid %d\n", pid)
		return nil
	}

	// ---- logger ----
	opts := logging.Options{Sink: logging.SinkConsole, Tag: programName(), Debug: debugLog}
	if daemonize {
		opts.Sink = logging.SinkSyslog
	}
	log, err := logging.New(opts)
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := serve(log, cmd.Root().Version); err != nil {
		log.Errorw(err.Error(), append([]any{"kind", fault.GetKind(err)}, fault.Fields(err)...)...)
		return fmt.Errorf("%w: %v", errLogged, err)
	}
	return nil
}

// serve loads the configuration, wires the daemon and runs it until a
// termination signal.
func serve(log *zap.SugaredLogger, ver string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	sv, err := buildSupervisor(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	log.Infow("linkd started",
		"version", ver,
		"interface", cfg.Counter.Interface,
		"threshold", cfg.Monitor.RateThreshold,
		"modem", cfg.Modem.Address,
	)
	return sv.Run(ctx)
}

// loadConfig returns the reference configuration, overridden by path if set.
func loadConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, fault.Attr(fault.Wrap(err, fault.KindFatal, "unable to load configuration"), "path", path)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fault.Wrap(err, fault.KindFatal, "invalid configuration")
	}
	config.Normalize(cfg)
	return cfg, nil
}

func programName() string {
	return filepath.Base(os.Args[0])
}

func buildVersion() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "devel"
}
