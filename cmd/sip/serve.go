package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"SIPPlanner/internal/analysis"
	"SIPPlanner/internal/collector"
	"SIPPlanner/internal/config"
	"SIPPlanner/internal/notifier"
	"SIPPlanner/internal/recorder"
	"SIPPlanner/internal/scheduler"
	"SIPPlanner/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portfolio analysis backend",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func newSource(cfg *config.Config, log *zap.SugaredLogger) collector.Source {
	if cfg.Prices.Source == "yahoo" {
		return collector.NewYahooSource(cfg.Prices.Symbols, cfg.Prices.Range, cfg.Proxy, log)
	}
	return collector.NewCSVSource(cfg.Prices.CSVPath)
}

func newRecorder(cfg *config.Config, log *zap.SugaredLogger) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
	if err != nil {
		log.Warnf("init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(false)
	if err != nil {
		return err
	}
	defer log.Sync()
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	src := newSource(cfg, log)
	log.Infof("price source: %s", src.Name())

	rec := newRecorder(cfg, log)
	defer rec.Close()

	svc := analysis.NewService(collector.NewCollector(src, log), rec, log)

	ctx, stop := signalContext()
	defer stop()

	log.Info("performing initial stock data analysis...")
	if _, err := svc.Plan(ctx); err != nil {
		log.Errorf("initial analysis failed: %v", err)
		log.Error("the API will report the error until the data is fixed")
	}

	var tn *notifier.TelegramNotifier
	var sender scheduler.Sender
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		sender = tn
	}

	sched := scheduler.NewScheduler(ctx, svc, sender, log)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.Commands())
		log.Info("telegram polling started")
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.New(svc, server.NewMetrics(), log)
	return srv.Run(ctx, cfg.Server.ListenAddr)
}
