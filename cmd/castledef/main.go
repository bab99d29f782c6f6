// Castledef is a deterministic, data-driven tower defense engine.
// Usage: castledef [--version] [--plain] [--script <file>] [--trace] [--seed <n>] <content_directory>
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ccc2223/Castle-Defense-sub001/cli"
	"github.com/ccc2223/Castle-Defense-sub001/engine"
	"github.com/ccc2223/Castle-Defense-sub001/engine/events"
	"github.com/ccc2223/Castle-Defense-sub001/loader"
	"github.com/ccc2223/Castle-Defense-sub001/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	trace := false
	seed := time.Now().UnixNano()
	var contentDir string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("castledef %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires a number\n")
				os.Exit(1)
			}
			i++
			n, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed requires a number\n")
				os.Exit(1)
			}
			seed = n
		default:
			if contentDir == "" {
				contentDir = args[i]
			}
		}
	}

	if contentDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: castledef [--version] [--plain] [--script <file>] [--trace] [--seed <n>] <content_directory>\n")
		os.Exit(1)
	}

	// Load and compile Lua game content.
	defs, err := loader.Load(contentDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	rec := &events.Recorder{}
	eng, err := engine.New(defs, engine.NewRNG(seed), rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		fmt.Printf("%s v%s\n\n", defs.Game.Title, defs.Game.Version)
		c := cli.New(eng, rec)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		fmt.Printf("%s v%s\n\n", defs.Game.Title, defs.Game.Version)
		c := cli.New(eng, rec)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(eng, rec); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
