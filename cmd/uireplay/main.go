package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/aleister1102/uidiff/internal/config"
	"github.com/aleister1102/uidiff/internal/introspect"
	"github.com/aleister1102/uidiff/internal/logger"
	"github.com/aleister1102/uidiff/internal/replay"
)

// Exit codes: 0 success, 1 replay mismatch, 2 fatal error.
const (
	exitOK       = 0
	exitMismatch = 1
	exitFatal    = 2
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

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Error().Err(err).Msg("Configuration validation failed")
		return exitFatal
	}

	driver, err := replay.NewProcessDriverBuilder(zLogger).
		WithReplayConfig(&gCfg.ReplayConfig).
		WithCommand(flags.UICommand...).
		Build()
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to start UI harness")
		return exitFatal
	}
	defer driver.Close()

	engine, err := replay.NewEngineBuilder(zLogger).
		WithConfig(&gCfg.ReplayConfig).
		WithDriver(driver).
		Build()
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to build replay engine")
		return exitFatal
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	code := exitOK
	switch flags.Mode {
	case modeReplay:
		code = runRecordingReplay(ctx, zLogger, engine, flags)
	default:
		code = runScript(ctx, zLogger, engine, driver, gCfg.ReplayConfig.FPS)
	}
	if code == exitFatal {
		return code
	}

	if flags.SaveRecording != "" {
		recorder := replay.NewRecorder(zLogger)
		if err := recorder.Save(flags.SaveRecording, engine.ActionLog()); err != nil {
			zLogger.Error().Err(err).Msg("Failed to save recording")
			return exitFatal
		}
	}

	if flags.DumpState {
		dumpScreenState(driver)
	}

	fmt.Printf("Total frames: %d\n", engine.Frame())
	fmt.Printf("Video saved to: %s\n", gCfg.ReplayConfig.RecordOutput)
	return code
}

// runScript executes the built-in deterministic scenario used for diff
// capture: settle on the home screen, two center clicks a second apart,
// then a final settle.
func runScript(ctx context.Context, zLogger zerolog.Logger, engine *replay.Engine, driver *replay.ProcessDriver, fps int) int {
	width, height := driver.ScreenSize()
	center := replay.Point{X: width / 2, Y: height / 2}

	script := replay.NewScriptBuilder(fps).
		Add(0, replay.Event{}).
		Add(fps, replay.Event{ClickPos: &center}).
		Add(fps, replay.Event{ClickPos: &center}).
		Add(fps, replay.Event{}).
		Build()

	if err := engine.RunScript(ctx, script); err != nil {
		zLogger.Error().Err(err).Msg("Script run failed")
		return exitFatal
	}
	return exitOK
}

// runRecordingReplay replays a recorded action log and verifies the
// executed log matches the recording.
func runRecordingReplay(ctx context.Context, zLogger zerolog.Logger, engine *replay.Engine, flags *cliFlags) int {
	recorder := replay.NewRecorder(zLogger)
	actions, err := recorder.Load(flags.Recording)
	if err != nil {
		zLogger.Error().Err(err).Str("recording", flags.Recording).Msg("Failed to load recording")
		return exitFatal
	}

	fmt.Printf("Replaying %d actions from %s\n", len(actions), flags.Recording)
	if err := engine.ReplayRecording(ctx, actions); err != nil {
		zLogger.Error().Err(err).Msg("Recording replay failed")
		return exitFatal
	}

	identical, diffText, err := recorder.Compare(actions, engine.ActionLog())
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to compare executed log against recording")
		return exitFatal
	}
	if !identical {
		zLogger.Error().Msg("Executed action log diverged from recording")
		fmt.Println(diffText)
		return exitMismatch
	}
	return exitOK
}

func dumpScreenState(driver *replay.ProcessDriver) {
	width, height := driver.ScreenSize()
	state := introspect.CaptureScreenState(driver.Root(), driver.ModalOverlay(), driver.Frame(), width, height)
	fmt.Println(introspect.RenderScreenState(&state))
	fmt.Printf("\nInteractive widgets: %d\n", len(state.InteractiveWidgets()))
}
