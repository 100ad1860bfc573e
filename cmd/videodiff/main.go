package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/aleister1102/uidiff/internal/config"
	"github.com/aleister1102/uidiff/internal/datastore"
	"github.com/aleister1102/uidiff/internal/ffmpeg"
	"github.com/aleister1102/uidiff/internal/history"
	"github.com/aleister1102/uidiff/internal/logger"
	"github.com/aleister1102/uidiff/internal/orchestrator"
	"github.com/aleister1102/uidiff/internal/reporter"
	"github.com/aleister1102/uidiff/internal/rslimiter"
)

// Exit codes: 0 identical, 1 differences found, 2 fatal error.
const (
	exitIdentical = 0
	exitDifferent = 1
	exitFatal     = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	flags, err := parseFlags()
	if err != nil {
		log.Printf("[FATAL] %v", err)
		return exitFatal
	}

	bootstrapLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	gCfg, err := config.LoadGlobalConfig(flags.ConfigFile, bootstrapLogger)
	if err != nil {
		log.Printf("[FATAL] Could not load global config using path '%s': %v", flags.ConfigFile, err)
		return exitFatal
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Printf("[FATAL] Could not initialize logger: %v", err)
		return exitFatal
	}

	if flags.BaseDir != "" {
		gCfg.ReporterConfig.BaseDir = flags.BaseDir
		zLogger.Info().Str("base_dir", flags.BaseDir).Msg("Report base dir overridden by command line flag")
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Error().Err(err).Msg("Configuration validation failed")
		return exitFatal
	}

	for _, video := range []string{flags.Video1, flags.Video2} {
		if _, err := os.Stat(video); err != nil {
			zLogger.Error().Err(err).Str("video", video).Msg("Video file is not readable")
			return exitFatal
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	outcome, err := executeDiff(ctx, gCfg, zLogger, flags)
	if err != nil {
		zLogger.Error().Err(err).Msg("Diff run failed")
		return exitFatal
	}

	summary := outcome.Result.Summary
	fmt.Println(summary.ResultText())
	fmt.Printf("Report: %s\n", outcome.ReportPath)

	if !flags.NoOpen {
		if err := openBrowser(outcome.ReportPath); err != nil {
			zLogger.Warn().Err(err).Msg("Could not open report in browser")
		}
	}

	if summary.Identical {
		return exitIdentical
	}
	return exitDifferent
}

func executeDiff(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger, flags *cliFlags) (*orchestrator.DiffRunOutcome, error) {
	mediaTool, err := ffmpeg.NewRunnerBuilder(zLogger).
		WithConfig(&gCfg.FFmpegConfig).
		Build()
	if err != nil {
		return nil, err
	}

	reportGenerator, err := reporter.NewDiffReportGeneratorBuilder(zLogger).
		WithReporterConfig(&gCfg.ReporterConfig).
		Build()
	if err != nil {
		return nil, err
	}

	builder := orchestrator.NewDiffOrchestratorBuilder(zLogger).
		WithConfig(gCfg).
		WithMediaTool(mediaTool).
		WithReportGenerator(reportGenerator)

	if gCfg.StorageConfig.EnableHashCache {
		cacheWriter, err := datastore.NewHashCacheWriterBuilder(zLogger).
			WithStorageConfig(&gCfg.StorageConfig).
			Build()
		if err != nil {
			return nil, err
		}
		cacheReader := datastore.NewHashCacheReader(&gCfg.StorageConfig, zLogger)
		builder.WithHashCache(cacheReader, cacheWriter)
	}

	if gCfg.HistoryConfig.Enabled {
		historyDB, err := history.NewDB(gCfg.HistoryConfig.SQLiteDBPath, zLogger)
		if err != nil {
			return nil, err
		}
		defer historyDB.Close()
		builder.WithHistoryDB(historyDB)
	}

	if gCfg.ResourceLimiterConfig.Enabled {
		limiter := rslimiter.NewResourceLimiter(gCfg.ResourceLimiterConfig, zLogger)
		limiter.Start()
		defer limiter.Stop()
		builder.WithResourceLimiter(limiter)
	}

	diffOrchestrator, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return diffOrchestrator.ExecuteDiffWorkflow(ctx, flags.Video1, flags.Video2, flags.Output)
}

func openBrowser(reportPath string) error {
	absPath, err := filepath.Abs(reportPath)
	if err != nil {
		return err
	}
	url := "file://" + absPath

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
