// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lspclient

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the file form of a client session.
//
//	address = "unix:/tmp/gopls.sock"
//	dialTimeout = "5s"
//	discardPolicy = "discard"
//	rootUri = "file:///src/project"
//
//	[client]
//	name = "lspclient"
//	version = "0.1.0"
//
//	[[workspaceFolders]]
//	uri = "file:///src/project"
//	name = "project"
type Config struct {
	Address          string            `toml:"address"`
	DialTimeout      string            `toml:"dialTimeout"`
	MaxHeaderBytes   int               `toml:"maxHeaderBytes"`
	MaxBodyBytes     int               `toml:"maxBodyBytes"`
	DiscardPolicy    string            `toml:"discardPolicy"`
	RootURI          string            `toml:"rootUri"`
	Client           ClientInfo        `toml:"client"`
	WorkspaceFolders []WorkspaceFolder `toml:"workspaceFolders"`

	dialTimeout time.Duration
	policy      DiscardPolicy
}

// LoadConfig reads and validates a TOML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates TOML config data.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Address == "" {
		return fmt.Errorf("address required")
	}
	if _, err := ParseAddress(cfg.Address); err != nil {
		return err
	}
	if cfg.DialTimeout != "" {
		d, err := time.ParseDuration(cfg.DialTimeout)
		if err != nil {
			return fmt.Errorf("dialTimeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("dialTimeout must not be negative")
		}
		cfg.dialTimeout = d
	}
	if cfg.MaxHeaderBytes < 0 {
		return fmt.Errorf("maxHeaderBytes must not be negative")
	}
	if cfg.MaxBodyBytes < 0 {
		return fmt.Errorf("maxBodyBytes must not be negative")
	}
	policy, err := ParseDiscardPolicy(cfg.DiscardPolicy)
	if err != nil {
		return fmt.Errorf("discardPolicy: %w", err)
	}
	cfg.policy = policy
	if cfg.Client.Name == "" {
		cfg.Client.Name = "lspclient"
	}
	return nil
}

// Options converts the config into DialOptions. Zero sizes keep the
// package defaults.
func (cfg *Config) Options() []DialOption {
	opts := []DialOption{WithDiscardPolicy(cfg.policy)}
	if cfg.dialTimeout > 0 {
		opts = append(opts, WithDialTimeout(cfg.dialTimeout))
	}
	if cfg.MaxHeaderBytes > 0 {
		opts = append(opts, WithMaxHeaderBytes(cfg.MaxHeaderBytes))
	}
	if cfg.MaxBodyBytes > 0 {
		opts = append(opts, WithMaxBodyBytes(cfg.MaxBodyBytes))
	}
	return opts
}

// InitializeParams builds the handshake payload for this config.
func (cfg *Config) InitializeParams(processID int) InitializeParams {
	return NewInitializeParams(processID, cfg.RootURI, cfg.Client.Name, cfg.Client.Version, cfg.WorkspaceFolders)
}

// DialConfig dials cfg.Address with the config's options followed by opts.
func DialConfig(ctx context.Context, cfg *Config, opts ...DialOption) (*Client, error) {
	return Dial(ctx, cfg.Address, append(cfg.Options(), opts...)...)
}
