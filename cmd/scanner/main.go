package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jamiedarville/sp500-analysis/internal/config"
	"github.com/jamiedarville/sp500-analysis/internal/model"
	"github.com/jamiedarville/sp500-analysis/internal/pipeline"
	"github.com/jamiedarville/sp500-analysis/internal/provider"
	"github.com/jamiedarville/sp500-analysis/internal/recorder"
	"github.com/jamiedarville/sp500-analysis/internal/report"
	"github.com/jamiedarville/sp500-analysis/internal/scheduler"
	"github.com/jamiedarville/sp500-analysis/internal/throttle"
	"github.com/jamiedarville/sp500-analysis/internal/universe"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: scanner [flags] [preset]\n\n")
	fmt.Fprintf(os.Stderr, "Presets: %s (default balanced)\n\nFlags:\n", strings.Join(config.PresetNames(), " | "))
	flag.PrintDefaults()
}

func main() {
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", "", "path to YAML config (default configs/config.yaml)")
		univSource = flag.String("universe", "", "ticker universe source: csv or sp500 (overrides config)")
		csvPath    = flag.String("csv", "", "path to the tickers CSV (overrides config)")
		threshold  = flag.Float64("threshold", 0, "drop threshold override, negative percent (e.g. -10)")
		cronSpec   = flag.String("cron", "", "cron expression for repeated scans (overrides config)")
		outDir     = flag.String("out", ".", "directory for result CSV files")
	)
	flag.Usage = usage
	flag.Parse()

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		cfg.Scan.Preset = flag.Arg(0)
	}
	if *univSource != "" {
		cfg.Universe.Source = *univSource
	}
	if *csvPath != "" {
		cfg.Universe.CSVPath = *csvPath
	}
	if *threshold != 0 {
		cfg.Scan.DropThreshold = *threshold
	}
	if *cronSpec != "" {
		cfg.Schedule.Cron = *cronSpec
	}

	preset, err := config.PresetByName(cfg.Scan.Preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		usage()
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log.File)
	defer logger.Sync()
	log := logger.Sugar()

	log.Infof("drop scanner starting: preset=%s, threshold=%.1f%%, universe=%s",
		preset.Name, cfg.Scan.DropThreshold, cfg.Universe.Source)
	log.Infof("config: %d workers, batch size %d, delay %s-%s",
		preset.MaxWorkers, preset.BatchSize, preset.DelayMin, preset.DelayMax)

	yahoo := provider.NewYahoo(cfg.Provider.Proxy, time.Duration(cfg.Provider.TimeoutSeconds)*time.Second)
	thr := throttle.New(preset, log)
	analyzer := pipeline.NewAnalyzer(yahoo, thr, cfg.Scan.DropThreshold, cfg.Scan.LookbackDays, cfg.Scan.MaxNews, log)
	batcher := pipeline.NewBatcher(analyzer, preset.MaxWorkers, log)
	orch := pipeline.NewOrchestrator(batcher, preset, log)

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warnf("init sqlite recorder failed, using noop: %v", err)
		} else {
			rec = sr
			defer sr.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scan := func() error {
		return runScan(ctx, cfg, preset, yahoo, orch, analyzer, thr, rec, log, *outDir)
	}

	if cfg.Schedule.Cron != "" {
		sched := scheduler.NewScheduler(log)
		if err := sched.Register(cfg.Schedule.Cron, func() {
			if err := scan(); err != nil {
				log.Errorf("scheduled scan: %v", err)
			}
		}); err != nil {
			log.Fatalf("%v", err)
		}
		sched.Start()
		log.Infof("watch mode: scanning on schedule %q, press Ctrl+C to stop", cfg.Schedule.Cron)
		<-ctx.Done()
		sched.Stop()
		return
	}

	if err := scan(); err != nil {
		log.Fatalf("%v", err)
	}
}

// runScan performs one full universe scan. A universe-load failure is the
// only run-fatal error; everything narrower degrades to per-symbol failures.
func runScan(ctx context.Context, cfg *config.Config, preset config.Preset,
	yahoo *provider.Yahoo, orch *pipeline.Orchestrator, analyzer *pipeline.Analyzer,
	thr *throttle.Throttle, rec recorder.Recorder, log *zap.SugaredLogger, outDir string) error {

	started := time.Now()

	var symbols []string
	var err error
	switch cfg.Universe.Source {
	case config.SourceSP500:
		log.Info("fetching S&P 500 ticker list from Wikipedia...")
		symbols, err = universe.FromWikipedia(ctx, yahoo.Client)
	default:
		log.Infof("loading tickers from %s...", cfg.Universe.CSVPath)
		symbols, err = universe.FromCSV(cfg.Universe.CSVPath)
	}
	if err != nil {
		return fmt.Errorf("load ticker universe: %w", err)
	}
	log.Infof("universe loaded: %d valid common stock tickers", len(symbols))

	console := &report.Console{Out: os.Stdout, TopDetail: cfg.Scan.TopDetail}
	console.PrintBanner(report.Meta{
		Threshold:    cfg.Scan.DropThreshold,
		Preset:       preset.Name,
		UniverseSize: len(symbols),
		StartedAt:    started,
	})

	result := orch.Run(ctx, symbols)

	console.Print(result.Records, func(symbol string) []model.NewsItem {
		return analyzer.News(ctx, symbol)
	})
	console.PrintFailures(result.Failed)

	if len(result.Records) > 0 {
		path, err := report.WriteCSV(outDir, result.Records, started)
		if err != nil {
			log.Errorf("save results: %v", err)
		} else {
			log.Infof("results saved to %s", path)
		}
	}

	run := &recorder.RunSummary{
		ID:           uuid.NewString(),
		StartedAt:    started,
		Preset:       preset.Name,
		Threshold:    cfg.Scan.DropThreshold,
		UniverseSize: len(symbols),
		RecordCount:  len(result.Records),
		FailureCount: len(result.Failed),
	}
	if err := rec.RecordRun(run, result.Records); err != nil {
		log.Errorf("record run: %v", err)
	}

	if len(result.Failed) > 0 {
		log.Warnf("failed to process %d tickers", len(result.Failed))
	}
	log.Infof("scan complete: %d drops, %d failures, %d provider requests, took %s",
		len(result.Records), len(result.Failed), thr.Requests(), time.Since(started).Round(time.Second))
	return nil
}

func newLogger(file string) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stdout"}
	if file != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, file)
	}
	return zap.Must(cfg.Build())
}
