package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// Config is the tool configuration. Values come from the defaults, then the
// TOML file given by --config, then command line flags and their
// environment variables.
type Config struct {
	ChainID  uint64      `toml:"chain_id"`
	Hash     string      `toml:"hash"`
	LogLevel string      `toml:"log_level"`
	Batch    BatchConfig `toml:"batch"`
}

// BatchConfig configures verify-batch.
type BatchConfig struct {
	Workers       int    `toml:"workers"`
	Format        string `toml:"format"`
	StopOnFailure bool   `toml:"stop_on_failure"`
}

func defaultConfig() Config {
	return Config{
		ChainID:  0,
		Hash:     hashSHA256,
		LogLevel: "info",
		Batch: BatchConfig{
			Workers: 0,
			Format:  "",
		},
	}
}

// loadConfigFile overlays the TOML file at path onto cfg. Unknown keys are
// rejected so typos do not go unnoticed.
func loadConfigFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// getConfig builds the effective configuration for ctx.
func getConfig(ctx *cli.Context) (*Config, error) {
	cfg := defaultConfig()

	if path := ctx.String(configFlag.Name); path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if ctx.IsSet(chainIDFlag.Name) {
		cfg.ChainID = ctx.Uint64(chainIDFlag.Name)
	}
	if ctx.IsSet(hashFlag.Name) {
		cfg.Hash = ctx.String(hashFlag.Name)
	}
	if ctx.IsSet(logLevelFlag.Name) {
		cfg.LogLevel = ctx.String(logLevelFlag.Name)
	}
	if ctx.IsSet(workersFlag.Name) {
		cfg.Batch.Workers = ctx.Int(workersFlag.Name)
	}
	if ctx.IsSet(formatFlag.Name) {
		cfg.Batch.Format = ctx.String(formatFlag.Name)
	}
	if ctx.IsSet(stopOnFailureFlag.Name) {
		cfg.Batch.StopOnFailure = ctx.Bool(stopOnFailureFlag.Name)
	}

	if _, err := messageDigest(cfg.Hash, nil); err != nil {
		return nil, err
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	switch cfg.Batch.Format {
	case "", "json", "csv":
	default:
		return nil, fmt.Errorf("unknown batch format %q (want json or csv)", cfg.Batch.Format)
	}
	return &cfg, nil
}

// setupLogging applies the configured log level.
func setupLogging(ctx *cli.Context) error {
	cfg, err := getConfig(ctx)
	if err != nil {
		return err
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetOutput(ctx.App.ErrWriter)
	logrus.SetLevel(level)
	return nil
}
