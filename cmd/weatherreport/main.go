package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"weatherreport/internal/config"
	"weatherreport/internal/loader"
	"weatherreport/internal/notifier"
	"weatherreport/internal/recorder"
	"weatherreport/internal/report"
	"weatherreport/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfgPath := config.DefaultPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	configFlag := flag.String("config", cfgPath, "path to the YAML config file")
	dataFlag := flag.String("data", "", "weather data file (.csv, .csv.gz, .csv.zst, .xlsx)")
	reportFlag := flag.String("report", "", "comma-separated reports: overview, daily, stats or all")
	serveFlag := flag.Bool("serve", false, "run scheduled reports until interrupted")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	applyFlags(cfg, *dataFlag, *reportFlag)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	if !*serveFlag {
		if err := runOnce(os.Stdout, cfg); err != nil {
			log.Fatalf("[FATAL] %v", err)
		}
		return
	}
	serve(cfg)
}

func applyFlags(cfg *config.Config, data, reports string) {
	if data != "" {
		cfg.Data.Path = data
	}
	if reports == "" {
		return
	}
	if reports == "all" {
		cfg.Data.Reports = append([]string(nil), report.Kinds...)
		return
	}
	var kinds []string
	for _, k := range strings.Split(reports, ",") {
		if k = strings.TrimSpace(k); k != "" {
			kinds = append(kinds, k)
		}
	}
	cfg.Data.Reports = kinds
}

// runOnce prints the configured reports for the configured data file.
func runOnce(w io.Writer, cfg *config.Config) error {
	ds, err := loader.LoadFile(cfg.Data.Path)
	if err != nil {
		return err
	}
	out, err := report.Render(ds, cfg.Data.Reports...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func serve(cfg *config.Config) {
	log.Println("[INFO] weatherreport starting...")

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		sender scheduler.Sender
		tn     *notifier.TelegramNotifier
	)
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = tn
	} else {
		log.Println("[INFO] telegram not configured, reports are recorded only")
	}

	sched := scheduler.NewScheduler(ctx, cfg.Data.Path, cfg.Data.Reports, sender, rec)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if cfg.Schedule.RunOnStart {
		log.Println("[INFO] run_on_start enabled, executing report task now")
		go sched.RunNow()
	}

	log.Printf("[INFO] weatherreport is running (%s). Press Ctrl+C to stop.", cfg.Schedule.Cron)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] weatherreport stopped")
}
