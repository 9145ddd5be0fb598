// Package config loads the Driver configuration enumerated in spec.md
// §4.7, layered from compiled-in defaults, RECORECO_* environment
// variables, and CLI flags (highest precedence), following the
// defaults->env->unmarshal->validate pipeline shape used across the
// retrieval pack's koanf-based services.
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/pc3-labs/recoreco/internal/rerrors"
)

// Config holds the full set of tunables for one Driver run: the core
// pipeline parameters of spec.md §4.7 plus the ambient logging/metrics
// settings of SPEC_FULL.md §4.8.
type Config struct {
	InputPath  string `koanf:"input_path" validate:"required"`
	OutputPath string `koanf:"output_path" validate:"required"`

	NumIndicators          int `koanf:"num_indicators" validate:"min=1"`
	InteractionsCapPerUser int `koanf:"interactions_cap_per_user" validate:"min=1"`
	InteractionsCapPerItem int `koanf:"interactions_cap_per_item" validate:"min=1"`

	// Seed is a pointer so "unset" (nondeterministic sampling, per
	// spec.md §4.7) is distinguishable from the zero seed value.
	Seed *int64 `koanf:"rng_seed"`

	LogLevel    string `koanf:"log_level" validate:"oneof=debug info warn error"`
	MetricsAddr string `koanf:"metrics_addr"`

	TopKWorkers int `koanf:"topk_workers" validate:"min=1"`
}

func defaults() *Config {
	return &Config{
		NumIndicators:          10,
		InteractionsCapPerUser: 500,
		InteractionsCapPerItem: 500,
		LogLevel:               "info",
		TopKWorkers:            4,
	}
}

// FlagSet describes the CLI surface of spec.md §6: --inputfile,
// --outputfile are required; --k, --f-max, --k-max, --seed are optional
// overrides; --log-level and --metrics-addr are ambient additions.
type FlagSet struct {
	InputFile   string
	OutputFile  string
	K           int
	FMax        int
	KMax        int
	Seed        int64
	SeedSet     bool
	LogLevel    string
	MetricsAddr string
	TopKWorkers int
}

// ParseFlags parses args (excluding the program name) into a FlagSet
// using the standard library's flag package, matching the teacher's
// flag.StringVar/flag.IntVar idiom throughout cmd/algorithms.
func ParseFlags(fs *flag.FlagSet, args []string) (*FlagSet, error) {
	f := &FlagSet{}
	var seedSet seenInt64

	fs.StringVar(&f.InputFile, "inputfile", "", "path to the TSV interaction log (required)")
	fs.StringVar(&f.OutputFile, "outputfile", "", "path to write NDJSON indicators (required)")
	fs.IntVar(&f.K, "k", 0, "number of indicators per item (default 10)")
	fs.IntVar(&f.FMax, "f-max", 0, "per-user interaction cap (default 500)")
	fs.IntVar(&f.KMax, "k-max", 0, "per-item down-sampling target (default 500)")
	fs.Var(&seedSet, "seed", "RNG seed for deterministic sampling (default: nondeterministic)")
	fs.StringVar(&f.LogLevel, "log-level", "", "debug|info|warn|error (default info)")
	fs.StringVar(&f.MetricsAddr, "metrics-addr", "", "optional host:port to serve /metrics and /healthz")
	fs.IntVar(&f.TopKWorkers, "topk-workers", 0, "parallel workers for the top-K stage (default 4)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", rerrors.ErrConfig, err)
	}
	if seedSet.set {
		f.Seed = seedSet.value
		f.SeedSet = true
	}
	return f, nil
}

// seenInt64 implements flag.Value so ParseFlags can distinguish "--seed
// not passed" from "--seed=0".
type seenInt64 struct {
	value int64
	set   bool
}

func (s *seenInt64) String() string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%d", s.value)
}

func (s *seenInt64) Set(raw string) error {
	var v int64
	if _, err := fmt.Sscanf(raw, "%d", &v); err != nil {
		return fmt.Errorf("invalid integer %q", raw)
	}
	s.value = v
	s.set = true
	return nil
}

// Load builds a Config by layering compiled-in defaults, RECORECO_*
// environment variables, and finally the parsed CLI flags (highest
// precedence), then validates the result.
func Load(flags *FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("%w: loading defaults: %v", rerrors.ErrConfig, err)
	}

	if err := k.Load(env.Provider("RECORECO_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("%w: loading environment: %v", rerrors.ErrConfig, err)
	}

	applyFlags(k, flags)

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling: %v", rerrors.ErrConfig, err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "RECORECO_"))
}

func applyFlags(k *koanf.Koanf, f *FlagSet) {
	if f == nil {
		return
	}
	overrides := map[string]any{}
	if f.InputFile != "" {
		overrides["input_path"] = f.InputFile
	}
	if f.OutputFile != "" {
		overrides["output_path"] = f.OutputFile
	}
	if f.K > 0 {
		overrides["num_indicators"] = f.K
	}
	if f.FMax > 0 {
		overrides["interactions_cap_per_user"] = f.FMax
	}
	if f.KMax > 0 {
		overrides["interactions_cap_per_item"] = f.KMax
	}
	if f.SeedSet {
		overrides["rng_seed"] = f.Seed
	}
	if f.LogLevel != "" {
		overrides["log_level"] = f.LogLevel
	}
	if f.MetricsAddr != "" {
		overrides["metrics_addr"] = f.MetricsAddr
	}
	if f.TopKWorkers > 0 {
		overrides["topk_workers"] = f.TopKWorkers
	}
	if len(overrides) > 0 {
		_ = k.Load(confmap.Provider(overrides, "."), nil)
	}
}

var validate = validator.New()

func validateConfig(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", rerrors.ErrConfig, err)
	}
	return nil
}
