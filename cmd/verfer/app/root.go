package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/storacha/go-verfer/core/result/failure"
)

const (
	exitValid   = 0
	exitInvalid = 1
	exitError   = 2
)

var errInvalidSignature = errors.New("signature is invalid")

type app struct {
	v      *viper.Viper
	out    io.Writer
	logger *slog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out}

	rootCmd := &cobra.Command{
		Use:   "verfer",
		Short: "Inspect self-describing public keys and verify signatures",
		Long: `verfer decodes CESR encoded public keys (qb64, qb2) and did:key
identifiers, and verifies Ed25519 and ECDSA-secp256k1 signatures with them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := a.readConfig(); err != nil {
				return err
			}
			logger, err := newLogger(errOut, a.v.GetString("log-level"))
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().String("config", "", "path to a config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("output", "text", "output format: text or json")

	a.v.SetEnvPrefix("VERFER")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd.AddCommand(a.newInspectCmd(), a.newVerifyCmd())
	return rootCmd
}

func (a *app) readConfig() error {
	path := a.v.GetString("config")
	if path == "" {
		return nil
	}
	a.v.SetConfigFile(path)
	if err := a.v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

func run(args []string, out, errOut io.Writer) int {
	rootCmd := newRootCmd(out, errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	switch {
	case err == nil:
		return exitValid
	case errors.Is(err, errInvalidSignature):
		return exitInvalid
	default:
		attrs := []any{"error", err}
		if name := failure.NameOf(err); name != "" {
			attrs = append(attrs, "name", name)
		}
		slog.New(slog.NewTextHandler(errOut, nil)).Error("command failed", attrs...)
		return exitError
	}
}

// Execute runs the command line and returns the process exit code: 0 on
// success, 1 when a signature does not verify and 2 on any other error.
func Execute(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}
