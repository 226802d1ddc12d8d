/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitynet

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Default public testnet endpoints, used when the caller omits them.
const (
	DefaultRPCURL = "https://testnet.entitynet.suparena.net/rpc"
	DefaultWSURL  = "wss://testnet.entitynet.suparena.net/ws"
)

// Environment variable names read by ConfigFromEnv.
const (
	EnvPrivateKey = "ENTITYNET_PRIVATE_KEY"
	EnvRPCURL     = "ENTITYNET_RPC_URL"
	EnvWSURL      = "ENTITYNET_WS_URL"
)

// Config holds construction parameters for a Client. Every field is
// optional: omitted endpoints fall back to the public testnet, and an
// omitted PrivateKey yields a read-only client.
type Config struct {
	// PrivateKey is a 0x-prefixed hex secp256k1 key. Its presence selects
	// the read/write capability; its format is not validated here and a
	// malformed key surfaces as a per-write transport failure.
	PrivateKey string `yaml:"privateKey"`

	// RPCURL is the HTTP JSON-RPC endpoint.
	RPCURL string `yaml:"rpcUrl"`

	// WSURL is the WebSocket endpoint for subscriptions.
	WSURL string `yaml:"wsUrl"`

	// Logger defaults to a no-op logger when nil.
	Logger *zerolog.Logger `yaml:"-"`
}

// resolve substitutes network defaults for omitted fields.
func (c Config) resolve() Config {
	if c.RPCURL == "" {
		c.RPCURL = DefaultRPCURL
	}
	if c.WSURL == "" {
		c.WSURL = DefaultWSURL
	}
	return c
}

func (c Config) logger() zerolog.Logger {
	if c.Logger != nil {
		return *c.Logger
	}
	return zerolog.Nop()
}

// ConfigFromEnv builds a Config from ENTITYNET_* environment variables,
// loading a .env file first when one is present.
func ConfigFromEnv() Config {
	_ = godotenv.Load()
	return Config{
		PrivateKey: os.Getenv(EnvPrivateKey),
		RPCURL:     os.Getenv(EnvRPCURL),
		WSURL:      os.Getenv(EnvWSURL),
	}
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
