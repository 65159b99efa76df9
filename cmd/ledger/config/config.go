// Package config builds the ledger CLI's configuration from flags,
// environment variables, and defaults, via the BuildFlagSet /
// BuildViper / BuildConfig pipeline.
package config

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag keys, also used as viper config keys.
const (
	EngineKey   = "engine"
	WorkersKey  = "workers"
	LogLevelKey = "log-level"
	LogFileKey  = "log-file"
	SortKey     = "sort"
	VmoduleKey  = "vmodule"
	VersionKey  = "version"
)

// Version is the CLI's reported version string.
const Version = "0.1.0"

// Engine flavor names accepted by --engine.
const (
	EngineBasic     = "basic"
	EngineSharded   = "sharded"
	EnginePerClient = "perclient"
)

// BuildFlagSet declares every flag the ledger CLI accepts, independent
// of urfave/cli's own flag parsing — cmd/ledger.main hands every
// argument to this pflag.FlagSet and takes the input path from the
// positional argument it leaves over, so the engine/logging/output knobs stay
// bindable to environment variables via viper without urfave/cli
// needing to know about any of them.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("ledger", pflag.ContinueOnError)
	fs.String(EngineKey, EngineBasic, "dispatcher flavor: basic, sharded, or perclient")
	fs.Int(WorkersKey, 0, "worker count for the sharded engine (0 = number of CPUs)")
	fs.String(LogLevelKey, "info", "log level: trace, debug, info, warn, error, crit")
	fs.String(LogFileKey, "", "optional rotating log file path")
	fs.Bool(SortKey, false, "sort report rows by client id")
	fs.String(VmoduleKey, "", "glog-style per-package verbosity overrides, e.g. engine=2")
	fs.Bool(VersionKey, false, "print version and exit")
	return fs
}

// BuildViper parses args against fs and layers them over environment
// variables (LEDGER_ prefix) into a *viper.Viper.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("ledger")
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: binding flags: %w", err)
	}
	return v, nil
}

// Config is the resolved, typed configuration cmd/ledger.main acts on.
type Config struct {
	Engine   string
	Workers  int
	LogLevel string
	LogFile  string
	Sort     bool
	Vmodule  string
}

// BuildConfig extracts a typed Config from v, using spf13/cast for the
// handful of loosely-typed viper lookups (a bound env var always comes
// back as a string, even for an int-typed flag).
func BuildConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Engine:   v.GetString(EngineKey),
		LogLevel: v.GetString(LogLevelKey),
		LogFile:  v.GetString(LogFileKey),
		Sort:     v.GetBool(SortKey),
		Vmodule:  v.GetString(VmoduleKey),
	}

	workers, err := cast.ToIntE(v.Get(WorkersKey))
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", WorkersKey, err)
	}
	cfg.Workers = workers

	switch cfg.Engine {
	case EngineBasic, EngineSharded, EnginePerClient:
	default:
		return Config{}, fmt.Errorf("config: unknown engine flavor %q", cfg.Engine)
	}

	return cfg, nil
}
