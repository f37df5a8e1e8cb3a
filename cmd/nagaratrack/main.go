package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nagaratrack "github.com/Rishi5377/NagaraTrackLite"
	"github.com/Rishi5377/NagaraTrackLite/config"
	"github.com/Rishi5377/NagaraTrackLite/derive"
	"github.com/Rishi5377/NagaraTrackLite/httpapi"
	"github.com/Rishi5377/NagaraTrackLite/source"
	"github.com/Rishi5377/NagaraTrackLite/telemetry"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the YAML configuration file")
	mode := flag.String("mode", "serve", "serve|oneshot")
	sourceMode := flag.String("source", "", "sim|http (overrides config)")
	flag.Parse()

	logger := nagaratrack.InitLogging()

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		logger.Error("configuration load failed", "error", err)
		os.Exit(1)
	}
	if *sourceMode != "" {
		cfg.Source.Mode = *sourceMode
	}

	if err := telemetry.Init(); err != nil {
		logger.Warn("telemetry init failed, instruments disabled", "error", err)
	}

	src := buildSource(cfg.Source)
	core := nagaratrack.NewCore(cfg, src, logger)
	core.Start()
	defer core.Stop()

	switch *mode {
	case "oneshot":
		if err := oneshot(core); err != nil {
			logger.Error("oneshot failed", "error", err)
			os.Exit(1)
		}
	case "serve":
		server := httpapi.NewServer(core, cfg.Server, logger)

		errCh := make(chan error, 1)
		go func() { errCh <- server.Run() }()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			logger.Info("shutting down", "signal", sig.String())
		case err := <-errCh:
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

// buildSource picks the snapshot source from configuration. The
// simulator is the default; http talks to an upstream REST backend,
// optionally overlaying vehicle positions from a GTFS-RT feed.
func buildSource(cfg config.SourceConfig) source.Client {
	if cfg.Mode != "http" {
		return source.NewSimulator()
	}
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	client := source.NewHTTPClient(cfg.BaseURL, timeout)
	if cfg.VehiclePositionsURL != "" {
		return source.NewGTFSRTSource(client, cfg.VehiclePositionsURL, timeout)
	}
	return client
}

// oneshot waits for the first full snapshot set and dumps the derived
// analytics to stdout. Useful for smoke-testing a source configuration.
func oneshot(core *nagaratrack.Core) error {
	deadline := time.Now().Add(10 * time.Second)
	for {
		_, errV := core.Vehicles("")
		_, errR := core.Routes()
		_, errS := core.Stops()
		_, errH := core.Health()
		if errV == nil && errR == nil && errS == nil && errH == nil {
			break
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("snapshots not loaded within deadline")
		}
		time.Sleep(100 * time.Millisecond)
	}

	out := map[string]any{
		"map_stats":  core.MapStats(),
		"efficiency": core.Efficiencies(derive.SortByEfficiency),
		"alerts":     core.Alerts(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
