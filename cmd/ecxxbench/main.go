package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ecxx/sparsecs/internal/component"
	"github.com/ecxx/sparsecs/internal/config"
	"github.com/ecxx/sparsecs/internal/core/ecs"
	"github.com/ecxx/sparsecs/internal/core/event"
	coresys "github.com/ecxx/sparsecs/internal/core/system"
	"github.com/ecxx/sparsecs/internal/scenario"
	"github.com/ecxx/sparsecs/internal/scripting"
	"github.com/ecxx/sparsecs/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Display helpers ────────────────────────────────────────────────

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value any) {
	valStr := fmt.Sprint(value)
	dotsLen := 42 - len(label) - len(valStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), valStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main logic ────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/bench.toml"
	if p := os.Getenv("ECXX_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Profiling
	if p := startProfile(cfg.Profile); p != nil {
		defer p.Stop()
	}

	cat := component.Default()

	// 4. Scenarios
	printSection("Scenarios")
	n, err := runScenarios(cfg.Scenarios.Dir, cat, log)
	if err != nil {
		return err
	}
	printStat("scenarios passed", n)
	fmt.Println()

	// 5. Lua scripts
	printSection("Scripts")
	n, err = runScripts(cfg.Scripts.Dir, cat, log)
	if err != nil {
		return err
	}
	printStat("scripts run", n)
	fmt.Println()

	// 6. Churn simulation
	printSection("Churn")
	return runChurn(cfg, log)
}

func runScenarios(dir string, cat *component.Catalog, log *zap.Logger) (int, error) {
	scs, err := scenario.LoadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("scenarios: %w", err)
	}
	for _, sc := range scs {
		w := ecs.NewWorld()
		res, err := scenario.Run(w, cat, sc, log)
		if err != nil {
			return 0, err
		}
		if err := w.Check(); err != nil {
			return 0, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		printOK(fmt.Sprintf("%s (%d steps, %d checks)", res.Name, res.Steps, res.Checks))
	}
	return len(scs), nil
}

func runScripts(dir string, cat *component.Catalog, log *zap.Logger) (int, error) {
	w := ecs.NewWorld()
	eng := scripting.NewEngine(w, cat, log)
	defer eng.Close()

	n, err := eng.RunDir(dir)
	if err != nil {
		return n, fmt.Errorf("scripts: %w", err)
	}
	if err := w.Check(); err != nil {
		return n, fmt.Errorf("scripts: %w", err)
	}
	return n, nil
}

func runChurn(cfg *config.Config, log *zap.Logger) error {
	w := ecs.NewWorld()
	w.Reserve(cfg.World.Reserve)
	bus := event.NewBus()

	churn := system.NewChurnSystem(w, bus, cfg.Churn, cfg.Sim.Lifetime, log)
	expire := system.NewExpireSystem(w, bus)
	cleanup := system.NewCleanupSystem(w)
	movement := system.NewMovementSystem(w)

	runner := coresys.NewRunner()
	runner.Register(system.NewDispatchSystem(bus))
	runner.Register(movement)
	runner.Register(churn)
	runner.Register(expire)
	runner.Register(cleanup)

	var audit *system.AuditSystem
	if cfg.Sim.Audit {
		audit = system.NewAuditSystem(w, bus, log)
		runner.Register(audit)
	}

	event.Subscribe(bus, func(ev event.RoundCompleted) {
		log.Info("round completed",
			zap.Int("round", ev.Round),
			zap.Int("removed", ev.Removed),
			zap.Int("destroyed", ev.Destroyed),
			zap.Int("created", ev.Created),
			zap.Int("alive", ev.Alive),
		)
	})

	start := time.Now()
	churn.Populate(cfg.Churn.Entities)
	log.Info("population created",
		zap.Int("entities", w.Len()),
		zap.Duration("took", time.Since(start)),
	)

	// Enough ticks for the last refill to expire and the final events to
	// be delivered.
	ticks := cfg.Churn.Rounds + int(cfg.Sim.Lifetime) + 2
	start = time.Now()
	for i := 0; i < ticks; i++ {
		runner.Tick(cfg.Sim.TickRate)
	}
	took := time.Since(start)

	printStat("ticks", runner.Ticks())
	printStat("rounds", churn.Rounds())
	printStat("alive", w.Len())
	printStat("moved", movement.Moved())
	printStat("expired", expire.Expired())
	printStat("destroyed by cleanup", cleanup.Destroyed())
	printStat("simulation time", took.Round(time.Millisecond))

	if audit != nil && audit.Failures() > 0 {
		return fmt.Errorf("audit: %d ticks failed invariant checks", audit.Failures())
	}
	if err := w.Check(); err != nil {
		return fmt.Errorf("final check: %w", err)
	}
	printOK("world consistent")
	return nil
}

func startProfile(cfg config.ProfileConfig) interface{ Stop() } {
	switch cfg.Mode {
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Path), profile.NoShutdownHook)
	case "mem":
		return profile.Start(profile.MemProfileAllocs, profile.ProfilePath(cfg.Path), profile.NoShutdownHook)
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
