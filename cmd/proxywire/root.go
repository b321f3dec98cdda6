package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/anirudhraja/proxywire"
	"github.com/anirudhraja/proxywire/registry"
)

// Environment variables that provide flag defaults.
const (
	envItems    = "PROXYWIRE_ITEMS"
	envLogLevel = "PROXYWIRE_LOG_LEVEL"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	itemsPath string
	logLevel  string

	logger *zap.Logger
	codec  *proxywire.Codec
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "proxywire",
		Short: "Inspect and convert game protocol payloads",
		Long: `proxywire works on the payloads a game proxy relays between client and server.

It converts tag-tree files between byte orders, compressions and JSON, translates
chat components between JSON, legacy formatting codes and plain text, and packs or
unpacks inventory slots and wire primitives given as hex.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.itemsPath, "items", os.Getenv(envItems),
		"item dataset file (.json, .jsonc, .yaml); the built-in dataset when empty [$"+envItems+"]")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", envOr(envLogLevel, "warn"),
		"log level: debug|info|warn|error [$"+envLogLevel+"]")

	root.AddCommand(
		newNBTCmd(a),
		newChatCmd(),
		newItemCmd(a),
		newVarIntCmd(),
		newPositionCmd(),
		newAngleCmd(),
	)
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newLogger builds a console logger writing to w.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05.000"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
	})
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
	return zap.New(core).Named("proxywire"), nil
}

// loadCodec returns the codec, loading the item dataset on first use.
func (a *app) loadCodec() (*proxywire.Codec, error) {
	if a.codec != nil {
		return a.codec, nil
	}
	if a.itemsPath == "" {
		c, err := proxywire.NewDefault(proxywire.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		a.codec = c
		return c, nil
	}

	reg, err := registry.LoadFile(a.itemsPath, registry.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	c, err := proxywire.New(reg, proxywire.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	a.codec = c
	return c, nil
}

// parseHex accepts hex digits with optional spaces, as printed by this tool.
func parseHex(s string) ([]byte, error) {
	clean := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != ':' {
			clean = append(clean, s[i])
		}
	}
	data, err := hex.DecodeString(string(clean))
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}

func printHex(w io.Writer, data []byte) {
	fmt.Fprintf(w, "% x\n", data)
}
