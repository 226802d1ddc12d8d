/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/suparena/entitynet"
	"github.com/suparena/entitynet/models"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	rpcURL      = flag.String("rpc", "", "RPC endpoint (default: testnet)")
	wsURL       = flag.String("ws", "", "WebSocket endpoint (default: testnet)")
	limit       = flag.Int("limit", 25, "Page size for query")
	verbose     = flag.Bool("verbose", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := entitynet.GetVersionInfo()
		fmt.Printf("EntityNet client version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	cfg := entitynet.ConfigFromEnv()
	if *rpcURL != "" {
		cfg.RPCURL = *rpcURL
	}
	if *wsURL != "" {
		cfg.WSURL = *wsURL
	}
	if *verbose {
		log := zerolog.New(os.Stderr).With().Timestamp().Logger()
		cfg.Logger = &log
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := entitynet.New(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect()

	switch args[0] {
	case "get":
		if len(args) != 2 {
			usage()
			os.Exit(2)
		}
		runGet(ctx, client, args[1])
	case "query":
		runQuery(ctx, client, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		usage()
		os.Exit(2)
	}
}

func runGet(ctx context.Context, client *entitynet.Client, key string) {
	entity, err := client.GetEntity(ctx, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "get: %v\n", err)
		os.Exit(1)
	}
	if entity == nil {
		fmt.Fprintf(os.Stderr, "entity %s not found\n", key)
		os.Exit(1)
	}
	printJSON(entity)
}

func runQuery(ctx context.Context, client *entitynet.Client, args []string) {
	opts := &models.QueryOptions{
		WithAttributes: true,
		WithPayload:    true,
		Limit:          *limit,
	}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Fprintf(os.Stderr, "bad filter %q, want key=value\n", arg)
			os.Exit(2)
		}
		opts.Filters = append(opts.Filters, models.QueryFilter{Key: key, Value: value})
	}

	entities, err := client.Query(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query: %v\n", err)
		os.Exit(1)
	}
	printJSON(entities)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  entitynet [flags] get <entityKey>
  entitynet [flags] query [key=value ...]

Flags:
`)
	flag.PrintDefaults()
}
