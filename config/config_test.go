package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		config  *Config
		err     error
	}{
		{
			caption: "an empty document keeps the defaults",
			src:     ``,
			config:  Default(),
		},
		{
			caption: "present keys overwrite the defaults",
			src: `
[generator]
description = "Generated.\nKeep out."
read-repeat = 1

[layout]
computation-enable = 256
`,
			config: &Config{
				Description:           "Generated.\nKeep out.",
				MiddlewareHeader:      DefaultMiddlewareHeader,
				SleepHeader:           DefaultSleepHeader,
				ReadRepeat:            1,
				SettleDelayMS:         DefaultSettleDelayMS,
				SkeletonInputsAddr:    DefaultSkeletonInputsAddr,
				ComputationEnableAddr: 256,
			},
		},
		{
			caption: "all keys",
			src: `
[generator]
description = ""
middleware-header = "mw.h"
sleep-header = "delay.h"
read-repeat = 3
settle-delay-ms = 0

[layout]
skeleton-inputs = 16
computation-enable = 8
`,
			config: &Config{
				Description:           "",
				MiddlewareHeader:      "mw.h",
				SleepHeader:           "delay.h",
				ReadRepeat:            3,
				SettleDelayMS:         0,
				SkeletonInputsAddr:    16,
				ComputationEnableAddr: 8,
			},
		},
		{
			caption: "read-repeat must be positive",
			src: `
[generator]
read-repeat = 0
`,
			err: ErrInvalidConfig,
		},
		{
			caption: "a description must not close the C comment it is emitted in",
			src: `
[generator]
description = "Generated. */ int x;"
`,
			err: ErrInvalidConfig,
		},
		{
			caption: "a header must not be empty",
			src: `
[generator]
middleware-header = ""
`,
			err: ErrInvalidConfig,
		},
		{
			caption: "an address must not be negative",
			src: `
[layout]
skeleton-inputs = -1
`,
			err: ErrInvalidConfig,
		},
		{
			caption: "a malformed document is invalid",
			src:     `[generator`,
			err:     ErrInvalidConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			c, err := Load(strings.NewReader(tt.src))
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.config, c); diff != "" {
				t.Fatalf("unexpected config (-want +got):\n%v", diff)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stubgen.toml")
	err := os.WriteFile(path, []byte("[generator]\nsettle-delay-ms = 50\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.SettleDelayMS != 50 {
		t.Fatalf("unexpected settle delay; want: 50, got: %v", c.SettleDelayMS)
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("unexpected error; want: %v, got: %v", os.ErrNotExist, err)
	}
}
