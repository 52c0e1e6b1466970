package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/localdoc/internal/buildinfo"
	"github.com/hyperifyio/localdoc/internal/serve"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Dotenv values must be in place before the env-backed flag defaults
	// below are evaluated.
	if err := serve.LoadEnvFiles(".env"); err != nil {
		log.Warn().Err(err).Msg("load .env failed")
	}

	var (
		host        string
		port        int
		root        string
		open        bool
		configPath  string
		quiet       bool
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&host, "host", os.Getenv("DEVSERVE_HOST"), "Host/interface to bind (default all interfaces)")
	flag.IntVar(&port, "port", envInt("DEVSERVE_PORT", serve.DefaultPort), "TCP port to listen on")
	flag.StringVar(&root, "root", envOr("DEVSERVE_ROOT", "."), "Directory to serve")
	flag.BoolVar(&open, "open", true, "Open the default browser once the server is up")
	flag.StringVar(&configPath, "config", os.Getenv("DEVSERVE_CONFIG"), "Optional YAML or JSON config file")
	flag.BoolVar(&quiet, "quiet", false, "Only log warnings and errors (silences request logs)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("devserve " + buildinfo.String())
		return
	}

	switch {
	case verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case quiet:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := serve.Config{
		Host: host,
		Port: port,
		Root: root,
		Open: open,
	}

	if configPath != "" {
		fc, err := serve.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("load config failed")
			os.Exit(1)
		}
		serve.ApplyFileConfig(&cfg, fc)
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		restoreExplicit(&cfg, set, host, port, root, open)
	}
	if err := serve.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid config")
		os.Exit(1)
	}

	// Interrupt is the normal way to stop the server, not an error.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

// restoreExplicit re-applies values for flags the user set on the command
// line after the config-file overlay, so explicit flags always win. The
// overlay alone cannot tell an explicit -port 0 (ephemeral) or -root "."
// from the untouched default.
func restoreExplicit(cfg *serve.Config, set map[string]bool, host string, port int, root string, open bool) {
	if set["host"] {
		cfg.Host = host
	}
	if set["port"] {
		cfg.Port = port
	}
	if set["root"] {
		cfg.Root = root
	}
	if set["open"] {
		cfg.Open = open
	}
}

func run(ctx context.Context, cfg serve.Config) error {
	s, err := serve.New(cfg)
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// envOr returns the value of key when set, otherwise fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt parses an integer environment variable, falling back on absence
// or garbage.
func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
