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

// Package config loads cbtools settings from an optional YAML file with
// environment-variable overrides. Command-line flags are applied on top by
// the caller.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"cbtools/internal/apperr"
)

// Environment variables read by Load.
const (
	EnvConfig   = "CBTOOLS_CONFIG"
	EnvLogLevel = "CBTOOLS_LOG_LEVEL"
	EnvFormat   = "CBTOOLS_FORMAT"
	EnvWorkers  = "CBTOOLS_WORKERS"
)

// Config is the top-level configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Output    OutputConfig    `yaml:"output"`
	Kmer      KmerConfig      `yaml:"kmer"`
	Selection SelectionConfig `yaml:"selection"`
	DiffExp   DiffExpConfig   `yaml:"diffexp"`
	Expr      ExprConfig      `yaml:"expr"`
	Manhattan ManhattanConfig `yaml:"manhattan"`
	// Workers bounds concurrent file loads; 0 means one per CPU.
	Workers int `yaml:"workers"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// OutputConfig selects the emitter and the label printed for unmapped ids.
type OutputConfig struct {
	Format       string `yaml:"format"`
	NoMatchLabel string `yaml:"noMatchLabel"`
}

type KmerConfig struct {
	K int `yaml:"k"`
	// MaxAlign caps the sequence length aligned by kmer-match --summary.
	MaxAlign int `yaml:"maxAlign"`
}

type SelectionConfig struct {
	ZThreshold float64 `yaml:"zThreshold"`
}

// DiffExpConfig names the sample columns of the two groups compared.
type DiffExpConfig struct {
	Alpha float64  `yaml:"alpha"`
	Early []string `yaml:"early"`
	Late  []string `yaml:"late"`
}

type ExprConfig struct {
	PromoterFlank int `yaml:"promoterFlank"`
}

type ManhattanConfig struct {
	Threshold float64 `yaml:"threshold"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Output: OutputConfig{
			Format:       "tsv",
			NoMatchLabel: "No match",
		},
		Kmer:      KmerConfig{K: 11, MaxAlign: 20000},
		Selection: SelectionConfig{ZThreshold: -3.29},
		DiffExp: DiffExpConfig{
			Alpha: 0.05,
			Early: []string{"unk", "CFU"},
			Late:  []string{"mys", "mid"},
		},
		Expr:      ExprConfig{PromoterFlank: 500},
		Manhattan: ManhattanConfig{Threshold: 5},
	}
}

// Load reads path when it is not empty, falling back to $CBTOOLS_CONFIG,
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperr.InvalidArgument("reading config file %s: %v", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperr.InvalidArgument("parsing config file %s: %v", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Output.Format = strings.ToLower(v)
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output.Format) {
	case "tsv", "table":
	default:
		return apperr.InvalidArgument("output.format must be tsv or table, got %q", c.Output.Format)
	}
	if c.Kmer.K <= 0 {
		return apperr.InvalidArgument("kmer.k must be positive, got %d", c.Kmer.K)
	}
	if c.DiffExp.Alpha <= 0 || c.DiffExp.Alpha >= 1 {
		return apperr.InvalidArgument("diffexp.alpha must be in (0, 1), got %g", c.DiffExp.Alpha)
	}
	if c.Expr.PromoterFlank < 0 {
		return apperr.InvalidArgument("expr.promoterFlank must not be negative, got %d", c.Expr.PromoterFlank)
	}
	if c.Workers < 0 {
		return apperr.InvalidArgument("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("format=%s level=%s workers=%d", c.Output.Format, c.Logging.Level, c.Workers)
}
