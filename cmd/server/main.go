package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazyhaar/lodestone/pkg/api"
	"github.com/hazyhaar/lodestone/pkg/catalog"
	"github.com/hazyhaar/lodestone/pkg/match"
	"github.com/hazyhaar/lodestone/pkg/service"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

const version = "1.0.0"

type config struct {
	Addr        string         `yaml:"addr"`
	LogLevel    string         `yaml:"log_level"`
	DefaultTopN int            `yaml:"default_top_n"`
	Weights     match.Weights  `yaml:"weights"`
	Catalog     catalog.Config `yaml:"catalog"`
}

func defaultConfig() config {
	return config{
		Addr:        ":8170",
		LogLevel:    "info",
		DefaultTopN: 3,
		Weights:     match.DefaultWeights(),
		Catalog: catalog.Config{
			// Built-in demo catalog; production deployments point
			// catalog.file at a CSV, JSON, or SQLite source.
			Entities: []string{
				"Büro AG",
				"Büro GmbH",
				"Büro Restaurants",
				"Büro Deutschland GmbH & Co. KG",
				"Büro Offices Berlin GmbH & Co. KG",
				"Büro Offices Solutions GmbH & Co. KG",
				"Büro Offices Solutions-Berlin GmbH & Co. KG",
			},
		},
	}
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	case "import":
		cmdImport(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: lodestone <command>

Commands:
  serve    Start the HTTP matching API
  mcp      Serve the matching tools over MCP stdio
  import   Convert a CSV/JSON catalog into a SQLite catalog database
`)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, logger := setup(*cfgPath)

	svc, err := service.New(cfg.Catalog, cfg.Weights, logger)
	if err != nil {
		logger.Error("failed to build matcher", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(svc, cfg.DefaultTopN, logger),
	}

	// SIGHUP: reload the catalog and rebuild the matcher.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading catalog")
			if err := svc.Reload(); err != nil {
				logger.Error("reload failed", "error", err)
			}
		}
	}()

	go func() {
		logger.Info("lodestone listening", "addr", cfg.Addr, "entities", svc.Size())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, logger := setup(*cfgPath)

	svc, err := service.New(cfg.Catalog, cfg.Weights, logger)
	if err != nil {
		logger.Error("failed to build matcher", "error", err)
		os.Exit(1)
	}

	mcpSrv := server.NewMCPServer("lodestone", version)
	api.RegisterMCPTools(mcpSrv, svc, cfg.DefaultTopN, logger)

	logger.Info("serving MCP over stdio", "entities", svc.Size())
	if err := server.ServeStdio(mcpSrv); err != nil {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	from := fs.String("from", "", "source catalog file (.csv or .json)")
	field := fs.String("field", catalog.DefaultField, "name column/field in the source file")
	to := fs.String("to", "catalog.db", "target SQLite catalog database")
	fs.Parse(args)

	if *from == "" {
		fmt.Fprintln(os.Stderr, "Usage: lodestone import --from <catalog.csv|catalog.json> [--field names] [--to catalog.db]")
		os.Exit(1)
	}

	names, err := catalog.Load(catalog.Config{File: *from, Field: *field})
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *from, err)
		os.Exit(1)
	}
	if err := catalog.WriteSQLite(*to, names); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *to, err)
		os.Exit(1)
	}
	fmt.Printf("imported %d entities -> %s\n", len(names), *to)
}

func setup(cfgPath string) (config, *slog.Logger) {
	bootstrap := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := loadConfig(cfgPath, bootstrap)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	return cfg, logger
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
