/*
Command gregotex writes GregorioTeX for chant score scripts.

# Usage

	gregotex [flags] file.lb

The output goes to file.gtex next to the input unless -o or -s says
otherwise. An input of "-" reads the script from standard input; it then
cannot include other scripts.

Problems found in the score are reported on standard error and the score
is written anyway. Problems that stop the score from being read, such as
an unknown command, are reported with the file and line of the command:

	gregotex: kyrie.lb:12: unknown glyph type "pess"

# Flags

	-o, --output file        write to file ("-" is standard output)
	-s, --stdout             write to standard output
	-p, --point-and-click    record the input path so that notes link back to it
	-v, --verbose            show informational messages; twice for debug
	    --sentry-dsn dsn     report errors to Sentry (default $GREGOTEX_SENTRY_DSN)

# Editors

The lsp subcommand runs a Language Server Protocol server on standard
input and output. It reports the problems of the open scripts as
diagnostics, documents commands and templates on hover, and finds the
definitions and uses of templates. Configure the editor to start

	gregotex lsp

for .lb files.
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/gregorio-project/gregotex/gregoriotex"
	"github.com/gregorio-project/gregotex/message"
	"github.com/gregorio-project/gregotex/score"
	"github.com/gregorio-project/gregotex/script"
)

// outputExt replaces the script extension in default output names.
const outputExt = ".gtex"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gregotex: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	output        string
	stdout        bool
	pointAndClick bool
	verbose       int
	sentryDSN     string
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "gregotex [flags] file.lb",
		Short:         "Write GregorioTeX for a chant score script",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return compile(cmd, &f, args[0])
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "write to `file` (\"-\" is standard output)")
	fl.BoolVarP(&f.stdout, "stdout", "s", false, "write to standard output")
	fl.BoolVarP(&f.pointAndClick, "point-and-click", "p", false, "record the input path in the output")
	fl.CountVarP(&f.verbose, "verbose", "v", "show more messages (repeat for debug)")
	fl.StringVar(&f.sentryDSN, "sentry-dsn", os.Getenv("GREGOTEX_SENTRY_DSN"), "report errors to Sentry at `dsn`")
	cmd.MarkFlagsMutuallyExclusive("output", "stdout")

	cmd.AddCommand(newVersionCmd(), newLSPCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the versions of gregotex and of its macro interface",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gregotex %s (GregorioTeX API %s)\n",
				gregoriotex.Version, gregoriotex.APIVersion)
		},
	}
}

func compile(cmd *cobra.Command, f *flags, input string) (err error) {
	h := message.NewHandler(cmd.ErrOrStderr(), message.Verbosity(f.verbose))
	if f.sentryDSN != "" {
		hub, herr := newHub(f.sentryDSN)
		if herr != nil {
			return herr
		}
		defer hub.Flush(2 * time.Second)
		defer func() {
			if err != nil {
				hub.CaptureException(err)
			}
		}()
		h = message.Report(h, hub, slog.LevelError)
	}
	counter := message.NewCounter(h)
	log := slog.New(counter)

	s, err := read(input, cmd.InOrStdin(), log)
	if err != nil {
		return err
	}

	opts := &gregoriotex.Options{Logger: log, PointAndClick: f.pointAndClick}
	if f.pointAndClick && input != "-" {
		if opts.Filename, err = filepath.Abs(input); err != nil {
			return err
		}
	}

	output := outputName(f, input)
	if output == "-" {
		err = gregoriotex.Write(cmd.OutOrStdout(), s, opts)
	} else {
		err = writeFile(output, s, opts)
	}
	if err != nil {
		return err
	}
	if sum := counter.Summary(); sum != "" {
		log.Info("done", "file", input, "anomalies", sum)
	}
	return nil
}

func newHub(dsn string) (*sentry.Hub, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:     dsn,
		Release: "gregotex@" + gregoriotex.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	return sentry.NewHub(client, sentry.NewScope()), nil
}

// read builds the score of the script input, or of stdin for "-".
// Includes are read from the directory of input.
func read(input string, stdin io.Reader, log *slog.Logger) (*score.Score, error) {
	if input == "-" {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return script.Parse("<stdin>", src, log)
	}
	dir, name := filepath.Split(input)
	if dir == "" {
		dir = "."
	}
	return script.Build(name, os.DirFS(dir), log)
}

func outputName(f *flags, input string) string {
	switch {
	case f.stdout:
		return "-"
	case f.output != "":
		return f.output
	case input == "-":
		return "-"
	}
	return strings.TrimSuffix(input, script.Ext) + outputExt
}

// writeFile writes s to name, removing the file if writing fails.
func writeFile(name string, s *score.Score, opts *gregoriotex.Options) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	err = gregoriotex.Write(f, s, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Join(err, os.Remove(name))
	}
	return nil
}
