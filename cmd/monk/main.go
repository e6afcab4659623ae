package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/peterh/liner"

	monk "github.com/stijnVanHorenbeek/return-to-monk"
)

const (
	appName     = "monk"
	historyFile = ".monk_history"
	promptMain  = ">> "
	promptCont  = ".. "
)

var banner = fmt.Sprintf("Return to Monk %s\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", monk.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(monk.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Return to Monk %s (built %s)

Usage:
  %s run <file.monkey> [-trace <level>]   Run a script.
  %s repl [-trace <level>]                Start the REPL.
  %s version                              Print the compiled version

`, monk.Version, monk.BuildDate, appName, appName, appName)
}

// initTracing installs the log-based trace adapter and applies the level
// given on the command line.
func initTracing(level string) {
	gtrace.SyntaxTracer = gologadapter.New()
	tracing.Select("monk.interp").SetTraceLevel(tracing.TraceLevelFromString(level))
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	tlevel := fs.String("trace", "Error", "Trace level [Debug|Info|Error]")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.monkey>\n", appName)
		return 2
	}
	initTracing(*tlevel)

	file := fs.Arg(0)
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	ip := monk.NewInterpreter()
	v, diags := ip.Run(string(src))
	if diags != nil {
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d)
		}
		return 1
	}
	if monk.IsError(v) {
		fmt.Fprintln(os.Stderr, red(monk.FormatValue(v)))
		return 1
	}
	if v.Tag != monk.VTNull {
		fmt.Println(monk.FormatValue(v))
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	tlevel := fs.String("trace", "Error", "Trace level [Debug|Info|Error]")
	_ = fs.Parse(args)
	initTracing(*tlevel)

	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := monk.NewInterpreter()

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			switch strings.TrimSpace(strings.ToLower(code)) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		if strings.TrimSpace(code) == "" {
			continue
		}

		v, diags := ip.RunPersistent(code)
		if diags != nil {
			for _, d := range diags {
				fmt.Fprintln(os.Stderr, red(d))
			}
			continue
		}
		if monk.IsError(v) {
			fmt.Println(red(monk.FormatValue(v)))
		} else {
			fmt.Println(blue(monk.FormatValue(v)))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readByParseProbe collects input lines until the accumulated text parses
// either cleanly or with a definite (non-incomplete) error. Unterminated
// constructs keep the continuation prompt going.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl+C drops the pending input and starts over.
			b.Reset()
			fmt.Println()
			continue
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, diags := monk.ParseProgramInteractive(src)
		if monk.HasIncomplete(diags) {
			continue
		}
		return src, true
	}
}
