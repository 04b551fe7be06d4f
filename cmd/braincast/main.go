package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/braincast-labs/braincast/internal/config"
	"github.com/braincast-labs/braincast/internal/feed"
	"github.com/braincast-labs/braincast/internal/logger"
	"github.com/braincast-labs/braincast/internal/report"
	"github.com/braincast-labs/braincast/internal/telegram"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	logger.Info("Configuration loaded from %s", *configPath)

	feedClient := feed.NewClient(cfg.Feeds.BaseURL, cfg.Feeds.Timeout)
	orch := report.New(
		report.SourceFunc(feedClient.FetchPrice),
		report.SourceFunc(feedClient.FetchSignal),
		cfg.Report.MinLoadingDelay,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, cleaning up...")
		cancel()
	}()

	if cfg.Telegram.Enabled {
		tgClient, err := telegram.NewClient(
			cfg.Telegram.BotToken,
			cfg.Telegram.ChatID,
			cfg.Telegram.MaxRetries,
			cfg.Telegram.RetryDelayBase,
			orch,
		)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram client: %v", err)
		}
		logger.Info("Telegram client initialized successfully")

		tgClient.ListenForCommands(ctx)
		logger.Info("Listening for Telegram commands (min loading delay: %v)", cfg.Report.MinLoadingDelay)

		<-ctx.Done()
		logger.Info("Service stopped")
		return
	}

	runTerminal(ctx, orch)
}

// runTerminal drives the report flow from stdin: "start" generates a
// report, "new" returns to the landing screen, "quit" exits.
func runTerminal(ctx context.Context, orch *report.Orchestrator) {
	fmt.Println("braincast ready. Commands: start, new, quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "start":
			fmt.Println("Reading the market...")
			if err := orch.Run(ctx); err != nil {
				fmt.Println("A report is already on screen or being generated. Type new first.")
				continue
			}
			printReport(orch.Current())
		case "new":
			orch.Reset()
			fmt.Println("Back on the landing screen. Type start for a new report.")
		case "quit", "exit":
			return
		case "":
		default:
			fmt.Println("Unknown command. Commands: start, new, quit")
		}
	}
}

func printReport(s report.Session) {
	if s.Snapshot == nil || s.Report == nil {
		return
	}
	fmt.Printf("BTC $%d (%+.2f%% 24h)\n", s.Snapshot.Price, s.Snapshot.Change24h)
	fmt.Printf("%s %dx | entry %.0f | target %.0f | stop %.0f\n",
		s.Report.Direction, s.Report.Leverage,
		s.Report.EntryPrice, s.Report.TargetPrice, s.Report.StopPrice)
}
