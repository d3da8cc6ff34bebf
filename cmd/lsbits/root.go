package main

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "LSBITS"

// app holds what the commands share: configuration, logger and the standard streams.
type app struct {
	v   *viper.Viper
	log *zap.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &app{v: v, stdin: stdin, stdout: stdout, stderr: stderr}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lsbits",
		Short:         "Pack, unpack and dump LSB-first bit streams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.bindFlags(cmd.Flags()); err != nil {
				return err
			}
			return a.setupLogger()
		},
	}
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().Bool("zstd", false, "the bit stream is zstd compressed")
	cmd.PersistentFlags().String("in", "", "input file (default stdin)")
	cmd.PersistentFlags().String("out", "", "output file (default stdout)")

	cmd.AddCommand(a.packCmd(), a.unpackCmd(), a.dumpCmd())
	return cmd
}

// bindFlags binds the flags of the running command, so LSBITS_* environment
// variables are used for flags not given on the command line.
func (a *app) bindFlags(fs *pflag.FlagSet) error {
	return errors.Wrap(a.v.BindPFlags(fs), "binding flags")
}

func (a *app) setupLogger() error {
	if a.log != nil {
		return nil
	}
	level, err := zapcore.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return errors.Wrap(err, "parsing log level")
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	a.log, err = cfg.Build()
	return errors.Wrap(err, "building logger")
}

// openInput returns the input to read, zstd decompressing it if decompress is set.
// The returned close function must be called when done.
func (a *app) openInput(decompress bool) (io.Reader, func(), error) {
	in, closeIn := a.stdin, func() {}
	if name := a.v.GetString("in"); name != "" {
		f, err := os.Open(name)
		if err != nil {
			return nil, nil, err
		}
		in, closeIn = f, func() { f.Close() }
	}
	if !decompress {
		return in, closeIn, nil
	}
	dec, err := zstd.NewReader(in)
	if err != nil {
		closeIn()
		return nil, nil, errors.Wrap(err, "zstd reader")
	}
	return dec, func() { dec.Close(); closeIn() }, nil
}

// openOutput returns the output to write to, zstd compressing it if compress is set.
// The returned close function finishes the output and must be called when done.
func (a *app) openOutput(compress bool) (io.Writer, func() error, error) {
	out, closeOut := a.stdout, func() error { return nil }
	if name := a.v.GetString("out"); name != "" {
		f, err := os.Create(name)
		if err != nil {
			return nil, nil, err
		}
		out, closeOut = f, f.Close
	}
	if !compress {
		return out, closeOut, nil
	}
	enc, err := zstd.NewWriter(out)
	if err != nil {
		closeOut()
		return nil, nil, errors.Wrap(err, "zstd writer")
	}
	return enc, func() error {
		if err := enc.Close(); err != nil {
			closeOut()
			return err
		}
		return closeOut()
	}, nil
}

// discardOutput closes the output of a failed command and removes the --out file.
func (a *app) discardOutput(closeOut func() error) {
	if err := closeOut(); err != nil {
		a.log.Debug("closing discarded output", zap.Error(err))
	}
	a.removeOutput()
}

// removeOutput removes the --out file, if any, so no partial output is left behind.
func (a *app) removeOutput() {
	name := a.v.GetString("out")
	if name == "" {
		return
	}
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		a.log.Warn("removing partial output", zap.String("file", name), zap.Error(err))
	}
}
