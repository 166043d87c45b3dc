package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	DefaultDescription           = "This is an autogenerated stub.\nDo not change it manually."
	DefaultMiddlewareHeader      = "middleware.h"
	DefaultSleepHeader           = "Sleep.h"
	DefaultReadRepeat            = 2
	DefaultSettleDelayMS         = 200
	DefaultSkeletonInputsAddr    = 0
	DefaultComputationEnableAddr = 100
)

// Config controls the text the generator emits. The zero value is not usable; start from Default.
type Config struct {
	Description      string
	MiddlewareHeader string
	SleepHeader      string

	// ReadRepeat is how many times a sync call reads its result back from the accelerator.
	ReadRepeat    int
	SettleDelayMS int

	SkeletonInputsAddr    int
	ComputationEnableAddr int
}

func Default() *Config {
	return &Config{
		Description:           DefaultDescription,
		MiddlewareHeader:      DefaultMiddlewareHeader,
		SleepHeader:           DefaultSleepHeader,
		ReadRepeat:            DefaultReadRepeat,
		SettleDelayMS:         DefaultSettleDelayMS,
		SkeletonInputsAddr:    DefaultSkeletonInputsAddr,
		ComputationEnableAddr: DefaultComputationEnableAddr,
	}
}

// tomlConfig is the configuration as it is encoded in TOML. Absent keys stay nil and keep their
// default values.
type tomlConfig struct {
	Generator *tomlGenerator `toml:"generator"`
	Layout    *tomlLayout    `toml:"layout"`
}

type tomlGenerator struct {
	Description      *string `toml:"description"`
	MiddlewareHeader *string `toml:"middleware-header"`
	SleepHeader      *string `toml:"sleep-header"`
	ReadRepeat       *int    `toml:"read-repeat"`
	SettleDelayMS    *int    `toml:"settle-delay-ms"`
}

type tomlLayout struct {
	SkeletonInputs    *int `toml:"skeleton-inputs"`
	ComputationEnable *int `toml:"computation-enable"`
}

// Load reads a TOML configuration and merges it over the defaults. The result is validated.
func Load(r io.Reader) (*Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	tc := &tomlConfig{}
	if err := toml.Unmarshal(b, tc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	c := Default()
	if g := tc.Generator; g != nil {
		setString(&c.Description, g.Description)
		setString(&c.MiddlewareHeader, g.MiddlewareHeader)
		setString(&c.SleepHeader, g.SleepHeader)
		setInt(&c.ReadRepeat, g.ReadRepeat)
		setInt(&c.SettleDelayMS, g.SettleDelayMS)
	}
	if l := tc.Layout; l != nil {
		setInt(&c.SkeletonInputsAddr, l.SkeletonInputs)
		setInt(&c.ComputationEnableAddr, l.ComputationEnable)
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	return c, nil
}

func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return c, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func (c *Config) Validate() error {
	switch {
	case strings.Contains(c.Description, "*/"):
		return fmt.Errorf("%w: description must not contain */ because it is emitted inside a C comment", ErrInvalidConfig)
	case c.MiddlewareHeader == "":
		return fmt.Errorf("%w: middleware-header must not be empty", ErrInvalidConfig)
	case c.SleepHeader == "":
		return fmt.Errorf("%w: sleep-header must not be empty", ErrInvalidConfig)
	case c.ReadRepeat < 1:
		return fmt.Errorf("%w: read-repeat must be 1 or greater: %v", ErrInvalidConfig, c.ReadRepeat)
	case c.SettleDelayMS < 0:
		return fmt.Errorf("%w: settle-delay-ms must not be negative: %v", ErrInvalidConfig, c.SettleDelayMS)
	case c.SkeletonInputsAddr < 0:
		return fmt.Errorf("%w: skeleton-inputs must not be negative: %v", ErrInvalidConfig, c.SkeletonInputsAddr)
	case c.ComputationEnableAddr < 0:
		return fmt.Errorf("%w: computation-enable must not be negative: %v", ErrInvalidConfig, c.ComputationEnableAddr)
	}
	return nil
}
