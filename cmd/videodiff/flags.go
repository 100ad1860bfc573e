package main

import (
	"flag"
	"fmt"
	"os"
)

// cliFlags holds the parsed command line.
type cliFlags struct {
	Video1     string
	Video2     string
	Output     string
	ConfigFile string
	BaseDir    string
	NoOpen     bool
}

func parseFlags() (*cliFlags, error) {
	globalConfigFile := flag.String("globalconfig", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("gc", "", "Alias for --globalconfig")

	baseDir := flag.String("basedir", "", "Base directory prefixed onto media paths inside the report, for serving the output under a sub-path.")
	noOpen := flag.Bool("no-open", false, "Do not open the HTML report in a browser")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] video1 video2 [output]\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Compare two videos frame by frame and generate an HTML diff report.")
		fmt.Fprintln(flag.CommandLine.Output(), "output is the report file name (default: diff.html).")
		fmt.Fprintln(flag.CommandLine.Output(), "\nFlags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Consolidate alias flags
	if *globalConfigFile == "" && *globalConfigFileAlias != "" {
		*globalConfigFile = *globalConfigFileAlias
	}

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		return nil, fmt.Errorf("two video files are required, got %d argument(s)", len(args))
	}

	flags := &cliFlags{
		Video1:     args[0],
		Video2:     args[1],
		Output:     "diff.html",
		ConfigFile: *globalConfigFile,
		BaseDir:    *baseDir,
		NoOpen:     *noOpen,
	}
	if len(args) >= 3 {
		flags.Output = args[2]
	}
	return flags, nil
}
