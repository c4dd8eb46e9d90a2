// Command bridgeserver runs the bridge engine REST API server.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/yourusername/bridgeengine/pkg/api"
	"github.com/yourusername/bridgeengine/pkg/engine"
)

const version = "0.1.0"

func main() {
	host := flag.String("host", "localhost", "Host to bind to (use 0.0.0.0 for all interfaces)")
	port := flag.Int("port", 8080, "Port to listen on")
	configPath := flag.String("config", "", "Path to HCL config file")
	readTimeout := flag.Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	verbose := flag.Bool("verbose", false, "Debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("bridgeserver v%s\n", version)
		os.Exit(0)
	}

	// Explicitly-set flags beat env, which beats the config file.
	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	// Local overrides from .env, if present.
	_ = godotenv.Load()

	logger := log.New(os.Stderr)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfgPath := *configPath
	if !explicit["config"] {
		if v := os.Getenv("BRIDGE_CONFIG"); v != "" {
			cfgPath = v
		}
	}
	cfg, err := engine.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("config", "err", err)
	}
	if addr := os.Getenv("BRIDGE_SOLVER_ADDR"); addr != "" && cfg.Solver.Addr == "" {
		cfg.Solver.Addr = addr
	}

	eng := engine.NewEngine(engine.EngineOptions{
		Config: cfg,
		Logger: logger.WithPrefix("engine"),
	})

	serverConfig := api.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    *readTimeout,
		WriteTimeout:   *writeTimeout,
		IdleTimeout:    60 * time.Second,
		MaxFastWorkers: cfg.Server.MaxFastWorkers,
		MaxSlowWorkers: cfg.Server.MaxSlowWorkers,
	}
	if v := os.Getenv("BRIDGE_HOST"); v != "" {
		serverConfig.Host = v
	}
	if v := os.Getenv("BRIDGE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			serverConfig.Port = n
		}
	}
	if explicit["host"] {
		serverConfig.Host = *host
	}
	if explicit["port"] {
		serverConfig.Port = *port
	}

	server := api.NewServer(eng, serverConfig, version, logger)

	if err := server.ListenAndServeWithGracefulShutdown(); err != nil {
		logger.Fatal("server", "err", err)
	}
}
