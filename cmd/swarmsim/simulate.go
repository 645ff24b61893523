package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"swarmsim/internal/admin"
	"swarmsim/internal/config"
	"swarmsim/internal/logging"
	"swarmsim/internal/scenario"
	"swarmsim/internal/sim"
)

var (
	simPrintOnly  bool
	simNoTUI      bool
	simConfigPath string
	simSchemaPath string
	simTick       time.Duration
	simLogFile    string
	simScenario   string
	simAdminAddr  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the real-time swarm simulator",
	Long:  "simulate starts the swarm simulation emitting per-swarm telemetry and behavior events.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}

		log := logging.New()
		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), log))
		defer cancel()

		writer, eventWriter, cleanup, err := newWriters(cfg, simPrintOnly, simNoTUI, simLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		clusterID := os.Getenv("CLUSTER_ID")
		if clusterID == "" {
			clusterID = "sector-01"
		}

		tickInterval := simTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return err
			}
			tickInterval = d
		}

		var runner *scenario.Runner
		if simScenario != "" {
			sc, err := loadScenario(simScenario)
			if err != nil {
				return err
			}
			runner = scenario.NewRunner(sc, nil)
			eventWriter = teeEvents(eventWriter, runner)
		}

		simulator := sim.NewSimulator(clusterID, cfg, writer, eventWriter, tickInterval)
		if runner != nil {
			runner = runner.WithDirector(simulator)
			go runner.Start(ctx)
		}

		srv := admin.NewServer(simulator)
		go func() {
			log.Info("admin UI listening", "addr", simAdminAddr)
			if err := srv.Start(ctx, simAdminAddr); err != nil && err != http.ErrServerClosed {
				log.Error("admin server failed", "err", err)
			}
		}()

		go simulator.Run(ctx)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		cancel()
		log.Info("swarm simulation stopped")
		return nil
	},
}

// loadScenario resolves a built-in arc name or a YAML file path.
func loadScenario(name string) (*scenario.Scenario, error) {
	if sc, ok := scenario.BuiltIn()[name]; ok {
		return &sc, nil
	}
	if _, err := os.Stat(name); err != nil {
		return nil, fmt.Errorf("unknown scenario %q (not a built-in arc or readable file)", name)
	}
	return scenario.Load(name)
}

// teeEvents fans events out to the configured writer and the scenario
// runner.
func teeEvents(w sim.EventWriter, r *scenario.Runner) sim.EventWriter {
	if w == nil {
		return r
	}
	return sim.NewMultiWriter(nil, []sim.EventWriter{w, r})
}

func init() {
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print telemetry to STDOUT instead of writing to DB")
	simulateCmd.Flags().BoolVar(&simNoTUI, "no-tui", false, "Disable the TUI and print JSON lines")
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/simulation.yaml", "Path to simulation configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/simulation.cue", "Path to CUE schema file")
	simulateCmd.Flags().DurationVar(&simTick, "tick", 33*time.Millisecond, "Simulation tick interval (e.g. 33ms, 100ms)")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export telemetry/event logs (JSONL)")
	simulateCmd.Flags().StringVar(&simScenario, "scenario", "", "Built-in arc name or scenario YAML path")
	simulateCmd.Flags().StringVar(&simAdminAddr, "admin-addr", ":8080", "Admin UI listen address")
}
