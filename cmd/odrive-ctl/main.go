// Command odrive-ctl is an interactive console for ODrive motor
// controllers on a CAN bus.
//
// It opens a SocketCAN interface, binds one axis by node id and drops
// into a command shell for telemetry queries, state control, setpoints
// and named parameter access over SDO.
//
// Usage:
//
//	odrive-ctl [flags]
//
// Flags:
//
//	-config string     Configuration file path (YAML)
//	-interface string  CAN interface name (default "can0")
//	-node int          Axis node id, 0-63 (default 0)
//	-endpoints string  flat_endpoints.json path for named parameters
//	-cache string      CBOR cache path for the parsed endpoint directory
//	-log-level string  Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Connect to axis 0 on can0
//	odrive-ctl -interface can0 -node 0
//
//	# Named parameter access with a cached directory
//	odrive-ctl -node 1 -endpoints flat_endpoints.json -cache /tmp/odrive.epc
//
//	# Show every frame on the bus
//	odrive-ctl -log-level debug
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/cansimple-protocol/cansimple-go/cmd/odrive-ctl/interactive"
	"github.com/cansimple-protocol/cansimple-go/pkg/canlog"
	"github.com/cansimple-protocol/cansimple-go/pkg/client"
	"github.com/cansimple-protocol/cansimple-go/pkg/endpoints"
	"github.com/cansimple-protocol/cansimple-go/pkg/transport"
)

// Config holds the tool configuration. Flags override file values.
type Config struct {
	Interface string `yaml:"interface"`
	Node      uint   `yaml:"node"`
	Endpoints string `yaml:"endpoints"`
	Cache     string `yaml:"cache"`
	LogLevel  string `yaml:"log_level"`
}

var (
	config     Config
	configFile string
)

func init() {
	flag.StringVar(&configFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&config.Interface, "interface", "can0", "CAN interface name")
	flag.UintVar(&config.Node, "node", 0, "Axis node id (0-63)")
	flag.StringVar(&config.Endpoints, "endpoints", "", "flat_endpoints.json path for named parameters")
	flag.StringVar(&config.Cache, "cache", "", "CBOR cache path for the parsed endpoint directory")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	if configFile != "" {
		if err := mergeConfigFile(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "odrive-ctl: %v\n", err)
			os.Exit(1)
		}
	}
	if config.Node > 63 {
		fmt.Fprintf(os.Stderr, "odrive-ctl: node must be 0-63, got %d\n", config.Node)
		os.Exit(1)
	}

	logger := newLogger(config.LogLevel)

	dir, err := loadDirectory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "odrive-ctl: %v\n", err)
		os.Exit(1)
	}

	bus, err := transport.NewSocketCAN(config.Interface)
	if err != nil {
		fmt.Fprintf(os.Stderr, "odrive-ctl: open %s: %v\n", config.Interface, err)
		os.Exit(1)
	}

	dispatcher := client.NewDispatcher(bus, canlog.NewSlogAdapter(logger))
	defer dispatcher.Close()

	axis, err := client.NewAxis(dispatcher, uint8(config.Node), dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "odrive-ctl: %v\n", err)
		os.Exit(1)
	}

	shell, err := interactive.New(axis, dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "odrive-ctl: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("odrive-ctl: %s node %d", config.Interface, config.Node)
	if dir != nil {
		fmt.Printf(", %d parameters", dir.Len())
	}
	fmt.Println()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	shell.Run(ctx, cancel)
}

// mergeConfigFile overlays the YAML file under explicitly set flags.
func mergeConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	fileCfg := config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	// Flags given on the command line win over the file.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["interface"] {
		config.Interface = fileCfg.Interface
	}
	if !set["node"] {
		config.Node = fileCfg.Node
	}
	if !set["endpoints"] {
		config.Endpoints = fileCfg.Endpoints
	}
	if !set["cache"] {
		config.Cache = fileCfg.Cache
	}
	if !set["log-level"] {
		config.LogLevel = fileCfg.LogLevel
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// loadDirectory resolves the endpoint directory: cache first, then the
// JSON document, rewriting the cache when possible.
func loadDirectory() (*endpoints.Directory, error) {
	if config.Cache != "" {
		dir, err := endpoints.LoadCache(config.Cache)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, os.ErrNotExist) && !errors.Is(err, endpoints.ErrCacheVersion) {
			fmt.Fprintf(os.Stderr, "odrive-ctl: ignoring cache: %v\n", err)
		}
	}

	if config.Endpoints == "" {
		return nil, nil
	}

	dir, err := endpoints.LoadFile(config.Endpoints)
	if err != nil {
		return nil, err
	}
	if config.Cache != "" {
		if err := dir.SaveCache(config.Cache); err != nil {
			fmt.Fprintf(os.Stderr, "odrive-ctl: %v\n", err)
		}
	}
	return dir, nil
}
