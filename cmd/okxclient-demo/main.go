// Package main is the entry point for the OKX client demo: it drives a
// public and (when credentials are present) private WebSocket session plus
// the signed REST client against one instrument, rendered with the TUI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/fd1az/okx-client/internal/apm"
	"github.com/fd1az/okx-client/internal/config"
	"github.com/fd1az/okx-client/internal/health"
	"github.com/fd1az/okx-client/internal/logger"
	"github.com/fd1az/okx-client/internal/metrics"
	"github.com/fd1az/okx-client/internal/ratelimit"
	"github.com/fd1az/okx-client/pkg/okx"
	"github.com/fd1az/okx-client/pkg/okx/rest"
	"github.com/fd1az/okx-client/pkg/okx/sign"
	"github.com/fd1az/okx-client/pkg/okx/ws"
	"github.com/fd1az/okx-client/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	instID := flag.String("inst", "BTC-USDT", "Instrument to stream")
	cliMode := flag.Bool("cli", false, "Run in CLI mode with logs (no TUI)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("okxclient-demo %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	tuiMode := !*cliMode

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if !tuiMode {
			fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		}
		cancel()
	}()

	if err := run(ctx, *configPath, *instID, tuiMode); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, instID string, tuiMode bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logLevel := logger.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		logLevel = logger.LevelDebug
	case "warn":
		logLevel = logger.LevelWarn
	case "error":
		logLevel = logger.LevelError
	}

	var log *logger.Logger
	if tuiMode {
		log = logger.New(io.Discard, logLevel, cfg.App.Name)
	} else {
		log = logger.New(os.Stderr, logLevel, cfg.App.Name)
		log.Info(ctx, "starting okx-client demo",
			"version", version,
			"environment", cfg.App.Environment,
			"instrument", instID,
		)
	}

	var traceProvider apm.TraceProvider
	if cfg.Telemetry.Enabled {
		if cfg.Telemetry.ServiceName != "" {
			os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
		}
		if cfg.Telemetry.OTLPEndpoint != "" {
			os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
		}

		traceProvider = apm.NewTraceProvider(log, apm.WithProvider(apm.ZipkinProvider, log))
		log.Info(ctx, "tracing initialized", "provider", "zipkin", "endpoint", cfg.Telemetry.OTLPEndpoint)

		metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.ProviderCfg{
				Provider: metrics.PrometheusProvider,
			}),
		)

		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(port)))
		log.Info(ctx, "prometheus metrics server started", "port", port)
	}
	defer func() {
		if traceProvider != nil {
			traceProvider.Stop()
		}
	}()

	healthServer := health.NewServer(8081, version)
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", 8081)
	}
	defer healthServer.Stop(ctx)

	netCfg := resolveNetwork(cfg.Network)
	creds := okx.Credentials{
		APIKey:     cfg.Credential.APIKey,
		SecretKey:  cfg.Credential.SecretKey,
		Passphrase: cfg.Credential.Passphrase,
	}

	governor := ratelimit.New(ratelimit.Defaults())
	for apiID, override := range cfg.RateLimits.Overrides {
		governor.SetOverride(apiID, ratelimit.Window{
			Capacity: override.Capacity,
			Duration: time.Duration(override.WindowMs) * time.Millisecond,
		})
	}

	restClient, err := rest.New(netCfg, creds, governor, log)
	if err != nil {
		return fmt.Errorf("failed to create rest client: %w", err)
	}

	startFunc := func() error {
		return startSessions(ctx, restClient, netCfg, creds, instID, log)
	}

	if tuiMode {
		return runTUI(ctx, instID, startFunc)
	}

	if err := startFunc(); err != nil {
		return err
	}
	log.Info(ctx, "sessions connected, streaming")
	<-ctx.Done()
	log.Info(ctx, "shutting down")
	return nil
}

func resolveNetwork(n config.NetworkConfig) okx.Config {
	cfg := okx.ConfigForProfile(n.Profile)
	if n.RestDomain != "" {
		cfg.RestDomain = n.RestDomain
	}
	if n.PublicWSDomain != "" {
		cfg.PublicWSDomain = n.PublicWSDomain
	}
	if n.PrivateWSDomain != "" {
		cfg.PrivateWSDomain = n.PrivateWSDomain
	}
	if n.BusinessWSDomain != "" {
		cfg.BusinessWSDomain = n.BusinessWSDomain
	}
	return cfg
}

// startSessions dials the public session (and private, when credentials are
// present) and wires their pushes into the TUI. The REST client seeds the
// display with a last-price snapshot before the first stream tick arrives.
func startSessions(ctx context.Context, restClient *rest.Client, netCfg okx.Config, creds okx.Credentials, instID string, log *logger.Logger) error {
	if ticker, err := restClient.MarketTicker(ctx, instID); err != nil {
		log.Warn(ctx, "failed to fetch initial ticker", "instId", instID, "error", err)
	} else if ticker != nil {
		ui.Send(ui.TickerMsg{Data: ws.TickerData{
			InstType: ticker.InstType,
			InstID:   ticker.InstID,
			Last:     ticker.Last,
			AskPx:    ticker.AskPx,
			BidPx:    ticker.BidPx,
			Vol24h:   ticker.Vol24h,
			Ts:       ticker.Ts,
		}})
	}

	public := ws.NewPublicSession(log)
	if err := public.Connect(ctx, netCfg); err != nil {
		return fmt.Errorf("public session connect: %w", err)
	}
	if err := public.WaitConnected(ctx); err != nil {
		return fmt.Errorf("public session not connected: %w", err)
	}
	ui.Send(ui.ConnectionStatusMsg{Name: "public", Connected: true})

	merge, err := public.SubscribeOrderBook(ctx, instID, ws.BookSizeDepth400, func(snap ws.Snapshot) {
		ui.Send(ui.OrderBookMsg{Snapshot: snap})
	})
	if err != nil {
		return fmt.Errorf("subscribe order book: %w", err)
	}
	merge.OnDesync(func(instID string, gotPrevSeqID, wantSeqID int64) {
		ui.Send(ui.DesyncMsg{InstID: instID, GotPrevSeqID: gotPrevSeqID, WantSeqID: wantSeqID})
	})

	if err := public.SubscribeTicker(ctx, instID, func(data ws.TickerData) {
		ui.Send(ui.TickerMsg{Data: data})
	}); err != nil {
		return fmt.Errorf("subscribe ticker: %w", err)
	}

	if creds.APIKey == "" {
		log.Info(ctx, "no credentials supplied, skipping private session")
		return nil
	}

	signer := sign.New(creds)
	private := ws.NewPrivateSession(log, signer)
	private.OnFinishAuth(func(ok bool, code, msg string) {
		if !ok {
			ui.Send(ui.ErrorMsg{Error: fmt.Errorf("login failed: code=%s msg=%s", code, msg)})
		}
	})
	if err := private.Connect(ctx, netCfg); err != nil {
		return fmt.Errorf("private session connect: %w", err)
	}
	if err := private.WaitAuthed(ctx); err != nil {
		return fmt.Errorf("private session not authed: %w", err)
	}
	ui.Send(ui.ConnectionStatusMsg{Name: "private", Connected: true})

	if err := private.SubscribeAccount(ctx, func(data ws.AccountData) {
		ui.Send(ui.AccountMsg{Data: data})
	}); err != nil {
		return fmt.Errorf("subscribe account: %w", err)
	}

	if err := private.SubscribeOrders(ctx, "SPOT", func(data ws.OrderData) {
		ui.Send(ui.OrderMsg{Data: data})
	}); err != nil {
		return fmt.Errorf("subscribe orders: %w", err)
	}

	return nil
}

func runTUI(ctx context.Context, instID string, startFunc func() error) error {
	startSignal := make(chan struct{}, 1)
	ui.OnStartModules = func() {
		select {
		case startSignal <- struct{}{}:
		default:
		}
	}

	p := tea.NewProgram(ui.New(instID), tea.WithAltScreen())
	ui.Program = p

	errCh := make(chan error, 1)
	go func() {
		select {
		case <-startSignal:
		case <-ctx.Done():
			errCh <- nil
			return
		}

		if err := startFunc(); err != nil {
			ui.Send(ui.ErrorMsg{Error: err})
			errCh <- err
			return
		}

		<-ctx.Done()
		errCh <- nil
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}
