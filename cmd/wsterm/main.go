// wsterm is a terminal WebSocket client. Lines read from stdin are dispatched
// as commands: "/send ${...}" composes text, "/binary [...]" composes bytes,
// and plain lines are sent as text templates.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/danmuck/wsterm/internal/commands"
	"github.com/danmuck/wsterm/internal/compose"
	"github.com/danmuck/wsterm/internal/logging"
	"github.com/danmuck/wsterm/internal/observability"
	"github.com/danmuck/wsterm/internal/transport/ws"
	"github.com/danmuck/wsterm/internal/vars"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "wsterm: %v\n", err)
		os.Exit(1)
	}
}

// syncWriter serializes writes from the REPL and the receive callback.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func run(args []string, in io.Reader, stdout io.Writer) error {
	var configPath, url, logLevel, metricsAddr string
	flagSet := pflag.NewFlagSet("wsterm", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	flagSet.StringVarP(&url, "url", "u", "", "WebSocket URL to connect to (overrides config)")
	flagSet.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	flagSet.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wsterm [flags] [command [template...]]\n\n")
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	cfg := defaultAppConfig()
	if configPath != "" {
		loaded, err := loadAppConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if flagSet.Changed("url") {
		cfg.URL = strings.TrimSpace(url)
	}
	if flagSet.Changed("log-level") {
		lvl, ok := logging.ParseLevel(logLevel)
		if !ok {
			return fmt.Errorf("unknown log level %q", logLevel)
		}
		cfg.LogLevel = lvl
	}
	if flagSet.Changed("metrics-addr") {
		cfg.MetricsAddr = strings.TrimSpace(metricsAddr)
	}

	logger := observability.InitLogger("wsterm", cfg.LogLevel)
	out := &syncWriter{w: stdout}

	texts := vars.NewTexts()
	for name, value := range cfg.Texts {
		texts.Put(name, value)
	}
	bins := vars.NewBins()
	for name, value := range cfg.Bins {
		bins.Put(name, value)
	}

	composerCfg := compose.DefaultConfig()
	composerCfg.Limits = cfg.Limits
	composerCfg.Logger = &logger
	host := commands.NewHost(compose.New(composerCfg), texts, bins, logger)
	registry, err := commands.NewDefaultRegistry(host, out)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		stop, err := startMetrics(cfg.MetricsAddr, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	if cfg.URL != "" {
		connCfg := cfg.Conn
		connCfg.Logger = logger
		connCfg.OnMessage = func(m ws.Message) { printReceived(out, m) }
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
		conn, err := ws.Dial(ctx, cfg.URL, connCfg)
		cancel()
		if err != nil {
			return err
		}
		defer conn.Close()
		host.SetConnection(conn)
	}

	if rest := flagSet.Args(); len(rest) > 0 {
		line := "/" + strings.TrimPrefix(rest[0], "/")
		if len(rest) > 1 {
			line += " " + strings.Join(rest[1:], " ")
		}
		return registry.Dispatch(line)
	}
	return repl(registry, in, logger)
}

func repl(registry *commands.Registry, in io.Reader, logger zerolog.Logger) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := registry.Dispatch(line); err != nil {
			logger.Error().Err(err).Str("line", line).Msg("command failed")
		}
	}
	return scanner.Err()
}

func printReceived(out io.Writer, m ws.Message) {
	if m.Binary {
		fmt.Fprintf(out, "< %s\n", commands.DescribeBinary(m.Data))
		return
	}
	fmt.Fprintf(out, "< %s\n", m.Data)
}
