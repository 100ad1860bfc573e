package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// Run modes.
const (
	modeScript = "script"
	modeReplay = "replay"
)

// cliFlags holds the parsed command line.
type cliFlags struct {
	Mode          string
	Recording     string
	SaveRecording string
	ConfigFile    string
	UICommand     []string
	DumpState     bool
}

func parseFlags() (*cliFlags, error) {
	mode := flag.String("mode", modeScript, "Mode to run the harness: script (deterministic scripted replay) or replay (replay a recorded action log)")
	modeAlias := flag.String("m", "", "Alias for --mode")

	recording := flag.String("recording", "", "Path to a recording JSON file (replay mode)")
	recordingAlias := flag.String("r", "", "Alias for --recording")

	saveRecording := flag.String("save-recording", "", "Path to write the executed action log as a recording JSON file")

	globalConfigFile := flag.String("globalconfig", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("gc", "", "Alias for --globalconfig")

	uiCommand := flag.String("ui-cmd", "", "UI harness command line to spawn and drive (required)")
	dumpState := flag.Bool("dump-state", false, "Print the final screen state as markdown after the run")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags]\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Drive a UI harness process through a deterministic replay, recording its output video for frame diffing.")
		fmt.Fprintln(flag.CommandLine.Output(), "\nFlags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Consolidate alias flags
	if *modeAlias != "" {
		*mode = *modeAlias
	}
	if *recording == "" && *recordingAlias != "" {
		*recording = *recordingAlias
	}
	if *globalConfigFile == "" && *globalConfigFileAlias != "" {
		*globalConfigFile = *globalConfigFileAlias
	}

	if *mode != modeScript && *mode != modeReplay {
		return nil, fmt.Errorf("invalid --mode '%s': must be %s or %s", *mode, modeScript, modeReplay)
	}
	if *uiCommand == "" {
		flag.Usage()
		return nil, fmt.Errorf("--ui-cmd is required")
	}
	if *mode == modeReplay && *recording == "" {
		return nil, fmt.Errorf("--recording is required in replay mode")
	}

	return &cliFlags{
		Mode:          *mode,
		Recording:     *recording,
		SaveRecording: *saveRecording,
		ConfigFile:    *globalConfigFile,
		UICommand:     strings.Fields(*uiCommand),
		DumpState:     *dumpState,
	}, nil
}
