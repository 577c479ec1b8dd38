// BSD 3-Clause License

// Copyright (c) 2023, Stephen Fletcher
// All rights reserved.

// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:

// 1. Redistributions of source code must retain the above copyright notice, this
//    list of conditions and the following disclaimer.

// 2. Redistributions in binary form must reproduce the above copyright notice,
//    this list of conditions and the following disclaimer in the documentation
//    and/or other materials provided with the distribution.

// 3. Neither the name of the copyright holder nor the names of its
//    contributors may be used to endorse or promote products derived from
//    this software without specific prior written permission.

// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
// FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
// DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
// CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
// OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"

	"cbtools/internal/apperr"
	"cbtools/internal/config"
	"cbtools/internal/emit"
	"cbtools/internal/logging"
)

var Version = "1.0.0"

// exitInterrupted is returned when the run is cancelled by a signal.
const exitInterrupted = 130

// errHelp is returned by a command that printed its usage on request.
var errHelp = errors.New("help requested")

func reverseSlice(s []string) []string {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return s
}

// intWithCommas converts an integer to a comma-separated string.
func intWithCommas(i int) string {
	if i < 0 {
		return "-" + intWithCommas(-i)
	}
	in := strconv.Itoa(i)
	out := make([]string, 0, len(in)/3+1)

	// Loop through the string, inserting commas every three digits.
	for len(in) > 3 {
		threeDigits := in[len(in)-3:]
		out = append(out, threeDigits)
		in = in[:len(in)-3]
	}
	out = append(out, in)

	// Since we built the out slice from right to left, reverse it.
	out = reverseSlice(out)
	return strings.Join(out, ",")
}

// env is what every command runs with.
type env struct {
	ctx    context.Context
	cfg    *config.Config
	log    *log.Logger
	out    emit.Emitter
	stdout io.Writer
	stderr io.Writer
}

// command is one cbtools utility.
type command struct {
	name    string
	args    string
	summary string
	run     func(e *env, args []string) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses the global flags, builds the shared environment and dispatches
// to the named command. It returns the process exit code.
func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cbtools", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to YAML config file (optional, or $"+config.EnvConfig+")")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn or error")
	format := fs.String("format", "", "Output format: tsv or table")
	version := fs.Bool("version", false, "Print the version and exit")
	fs.Usage = func() { usage(stderr, fs) }

	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return apperr.ExitOK
		}
		return apperr.ExitArgument
	}
	if *version {
		fmt.Fprintln(stdout, "cbtools", Version)
		return apperr.ExitOK
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return apperr.ExitArgument
	}
	cmd, ok := lookup(rest[0])
	if !ok {
		fmt.Fprintf(stderr, "cbtools: unknown command %q\n", rest[0])
		fs.Usage()
		return apperr.ExitArgument
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "cbtools:", err)
		return apperr.ExitCode(err)
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *format != "" {
		cfg.Output.Format = strings.ToLower(*format)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "cbtools:", err)
		return apperr.ExitCode(err)
	}

	logger := logging.New(stderr, cfg.Logging.Level)
	out, err := emit.New(cfg.Output.Format, stdout)
	if err != nil {
		logger.Error(err)
		return apperr.ExitArgument
	}
	logger.Debug("starting", "command", cmd.name, "config", cfg)

	e := &env{ctx: ctx, cfg: cfg, log: logger, out: out, stdout: stdout, stderr: stderr}
	err = cmd.run(e, rest[1:])
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	switch {
	case err == nil, errors.Is(err, errHelp):
		return apperr.ExitOK
	case errors.Is(err, context.Canceled):
		logger.Warn("interrupted")
		return exitInterrupted
	default:
		logger.Error(err)
		return apperr.ExitCode(err)
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands() {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "cbtools %s - computational biology record tools\n\n", Version)
	fmt.Fprintln(w, "Usage: cbtools [global flags] <command> [flags] args...")
	fmt.Fprintln(w, "\nCommands:")
	cmds := commands()
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].name < cmds[j].name })
	for _, c := range cmds {
		fmt.Fprintf(w, "  %-16s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w, "\nGlobal flags:")
	fs.PrintDefaults()
}

// flags returns a command flag set that reports errors instead of exiting.
func (e *env) flags(c string) *flag.FlagSet {
	fs := flag.NewFlagSet(c, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

// parse parses args allowing flags after positional arguments and checks the
// positional count against min and max; max < 0 means unbounded.
func (e *env) parse(fs *flag.FlagSet, args []string, min, max int) ([]string, error) {
	if cmd, ok := lookup(fs.Name()); ok {
		fs.Usage = func() {
			fmt.Fprintf(e.stderr, "Usage: cbtools %s [flags] %s\n\n%s\n", cmd.name, cmd.args, cmd.summary)
			fs.PrintDefaults()
		}
	}
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, errHelp
			}
			return nil, apperr.InvalidArgument("%s: %v", fs.Name(), err)
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		pos = append(pos, args[0])
		args = args[1:]
	}
	if len(pos) < min || (max >= 0 && len(pos) > max) {
		fs.Usage()
		return nil, apperr.InvalidArgument("%s: expected %s", fs.Name(), expectedArgs(min, max))
	}
	return pos, nil
}

func expectedArgs(min, max int) string {
	switch {
	case max < 0:
		return fmt.Sprintf("at least %d argument(s)", min)
	case min == max:
		return fmt.Sprintf("%d argument(s)", min)
	default:
		return fmt.Sprintf("%d to %d argument(s)", min, max)
	}
}

// optional returns the i-th positional argument or "-" for standard input.
func optional(pos []string, i int) string {
	if i < len(pos) {
		return pos[i]
	}
	return "-"
}

func atoi(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.InvalidArgument("%s must be an integer, got %q", name, s)
	}
	return v, nil
}

func atof(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, apperr.InvalidArgument("%s must be a number, got %q", name, s)
	}
	return v, nil
}

// skipped logs records dropped while reading src.
func (e *env) skipped(src string, n int) {
	if n > 0 {
		e.log.Debug("skipped malformed records", "input", src, "count", n)
	}
}

// count emits a single count, the result of every counting command.
func (e *env) count(n int) {
	e.out.Row([]string{emit.Int(n)})
}

func errRange(lo string, lov int, hi string, hiv int) error {
	return apperr.InvalidArgument("%s (%d) must not exceed %s (%d)", lo, lov, hi, hiv)
}
