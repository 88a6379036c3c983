// Command lzstep steps through the LZ77 parse of a string, measures
// streaming DEFLATE with different window sizes, and replays whiteboard
// sessions.
//
// Usage:
//
//	lzstep [-config file.yaml] [-v] steps|stats|whiteboard [flags]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/andybalholm/lzstep/internal/config"
)

var (
	configFile = flag.String("config", "", "YAML settings file")
	verbose    = flag.Bool("v", false, "log progress to stderr")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: lzstep [flags] steps|stats|whiteboard [subcommand flags]\n")
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("lzstep: ")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatal(err)
		}
		logf("loaded %s", *configFile)
	}

	var err error
	switch cmd, args := flag.Arg(0), flag.Args()[1:]; cmd {
	case "steps":
		err = stepsCommand(cfg.Steps, args, os.Stdin, os.Stdout)
	case "stats":
		err = statsCommand(cfg.Stats, args, os.Stdout)
	case "whiteboard":
		err = whiteboardCommand(cfg.Whiteboard, args, os.Stdin, os.Stdout)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func logf(format string, args ...interface{}) {
	if *verbose {
		log.Printf(format, args...)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
