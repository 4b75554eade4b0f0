package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/ukaji3/gridtable-go/internal/logging"
	"github.com/ukaji3/gridtable-go/pkg/gridtable"
)

// config holds the settings shared by every command.
type config struct {
	Sheet      string
	HeaderMode gridtable.HeaderMode
	Assembly   gridtable.AssemblyMode
	MinRows    int
	Pretty     bool
	Metrics    bool
	LogLevel   string
	LogFormat  string
}

var cfg config

// addGlobalFlags registers the flags every command understands.
func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Config file (yaml, json or toml)")
	fs.String("sheet", "", "Sheet name (default: first sheet)")
	fs.String("header-mode", string(gridtable.HeaderSparse), "Header parsing: sparse or strict")
	fs.String("assembly", string(gridtable.AssemblyPositional), "Record assembly: positional or grouped")
	fs.Int("min-rows", 0, "Minimum grid rows addressable by inserts (default 1000)")
	fs.Bool("pretty", false, "Pretty-print JSON output")
	fs.Bool("metrics", false, "Print grid metrics to stderr on exit")
	fs.String("log-level", "info", "Log level: debug, info, warn, error")
	fs.String("log-format", "text", "Log format: text or json")
}

// loadConfig merges flags, GRIDTABLE_* environment variables, an optional
// .env file and an optional config file, in that order of precedence.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	v := viper.New()
	v.SetEnvPrefix("gridtable")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}

	headerMode, err := gridtable.ParseHeaderMode(v.GetString("header-mode"))
	if err != nil {
		return err
	}
	assembly, err := gridtable.ParseAssemblyMode(v.GetString("assembly"))
	if err != nil {
		return err
	}

	cfg = config{
		Sheet:      v.GetString("sheet"),
		HeaderMode: headerMode,
		Assembly:   assembly,
		MinRows:    v.GetInt("min-rows"),
		Pretty:     v.GetBool("pretty"),
		Metrics:    v.GetBool("metrics"),
		LogLevel:   v.GetString("log-level"),
		LogFormat:  v.GetString("log-format"),
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	return nil
}

// parseAssignments turns repeated key=value flags into a patch.
func parseAssignments(pairs []string) (map[string]string, error) {
	patch := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid assignment %q (want key=value)", p)
		}
		patch[k] = v
	}
	return patch, nil
}
