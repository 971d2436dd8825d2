package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/acrmon/acrmon/acrcloud"
	"github.com/acrmon/acrmon/archive"
	"github.com/acrmon/acrmon/config"
	"github.com/acrmon/acrmon/library"
	"github.com/acrmon/acrmon/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	switch os.Args[1] {
	case "projects":
		return runProjects(os.Args[2:])
	case "monitors":
		return runMonitors(os.Args[2:])
	case "results":
		return runResults(os.Args[2:])
	case "watch":
		return runWatch(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", os.Args[1])
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: acrmon <subcommand> <action> [flags]

Subcommands:
  projects   list | get <name> | add <name> | update <name> | delete <name>
  monitors   list | get <id> | add | update <id> | delete <id> | pause <id> | restart <id>
  results    last | current | recent | day | period | month
  watch      Poll the configured stream and show recognitions in a table

Credentials and the monitored stream come from acrmon.toml (searched in
$HOME/.config/ and the working directory, or set with --config).

Run 'acrmon <subcommand> --help' for action flags.
`)
}

// commonFlags registers the flags every action shares.
func commonFlags(flags *pflag.FlagSet) (configPath *string, verbose *bool) {
	configPath = flags.String("config", "", "path to the config file")
	verbose = flags.Bool("verbose", false, "enable debug logging")
	return configPath, verbose
}

func loadConfig(path string, verbose bool) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg, logger, nil
}

func newConsole(cfg *config.Config, logger *slog.Logger) (*acrcloud.Console, error) {
	if err := cfg.RequireConsole(); err != nil {
		return nil, err
	}
	return acrcloud.NewConsole(acrcloud.ConsoleConfig{
		AccessKey:    cfg.Console.AccessKey,
		AccessSecret: []byte(cfg.Console.AccessSecret),
		Host:         cfg.Client.Host,
		HTTPClient:   &http.Client{Timeout: cfg.Client.GetHTTPTimeout()},
		Logger:       logger,
	})
}

func newStreamMonitor(cfg *config.Config, logger *slog.Logger) (*acrcloud.StreamMonitor, error) {
	if err := cfg.RequireMonitor(); err != nil {
		return nil, err
	}
	return acrcloud.NewStreamMonitor(acrcloud.StreamMonitorConfig{
		ProjectAccessKey: cfg.Monitor.AccessKey,
		StreamID:         cfg.Monitor.StreamID,
		Host:             cfg.Client.Host,
		ResultHost:       cfg.Client.ResultHost,
		HTTPClient:       &http.Client{Timeout: cfg.Client.GetHTTPTimeout()},
		Logger:           logger,
	})
}

// printResult writes the raw response body to stdout. A non-2xx answer
// still prints the body (the service reports errors as JSON) and exits
// non-zero.
func printResult(body string, err error) error {
	if body != "" {
		fmt.Println(body)
	}
	var serverErr *acrcloud.ServerError
	if errors.As(err, &serverErr) {
		return fmt.Errorf("server returned status %d", serverErr.StatusCode)
	}
	return err
}

func runProjects(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("projects: action required (list, get, add, update, delete)")
	}
	action := args[0]
	flags := pflag.NewFlagSet("projects "+action, pflag.ContinueOnError)
	configPath, verbose := commonFlags(flags)
	projectType := flags.String("type", "", "project type (AVR, BM-ACRC, LCD, HR)")
	region := flags.String("region", "", "project region")
	audioType := flags.Int("audio-type", 0, "1 for recorded audio, 2 for line-in")
	externalID := flags.String("external-id", "", "external metadata ids (deezer, itunes, spotify)")
	bucketNames := flags.StringArray("bucket", nil, "bucket name, repeatable")
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	cfg, logger, err := loadConfig(*configPath, *verbose)
	if err != nil {
		return err
	}
	console, err := newConsole(cfg, logger)
	if err != nil {
		return err
	}

	var buckets []acrcloud.Bucket
	for _, name := range *bucketNames {
		buckets = append(buckets, acrcloud.Bucket{Name: name})
	}

	ctx := context.Background()
	switch action {
	case "list":
		return printResult(console.ListProjects(ctx))
	case "get":
		name, err := requireArg(flags, "project name")
		if err != nil {
			return err
		}
		return printResult(console.GetProject(ctx, name))
	case "add":
		name, err := requireArg(flags, "project name")
		if err != nil {
			return err
		}
		opts := &acrcloud.ProjectOptions{
			Type:       *projectType,
			Buckets:    buckets,
			AudioType:  *audioType,
			ExternalID: *externalID,
			Region:     *region,
		}
		return printResult(console.AddProject(ctx, name, opts))
	case "update":
		name, err := requireArg(flags, "project name")
		if err != nil {
			return err
		}
		return printResult(console.UpdateProject(ctx, name, buckets))
	case "delete":
		name, err := requireArg(flags, "project name")
		if err != nil {
			return err
		}
		return printResult(console.DeleteProject(ctx, name))
	default:
		return fmt.Errorf("projects: unknown action %q", action)
	}
}

func runMonitors(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("monitors: action required (list, get, add, update, delete, pause, restart)")
	}
	action := args[0]
	flags := pflag.NewFlagSet("monitors "+action, pflag.ContinueOnError)
	configPath, verbose := commonFlags(flags)
	project := flags.String("project", "", "project name")
	streamName := flags.String("name", "", "stream name")
	streamURL := flags.String("url", "", "stream URL")
	region := flags.String("region", "", "monitor region")
	realtime := flags.Int("realtime", 1, "1 for raw results within a minute, 0 for refined")
	record := flags.Int("record", 0, "0 or 1")
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	cfg, logger, err := loadConfig(*configPath, *verbose)
	if err != nil {
		return err
	}
	console, err := newConsole(cfg, logger)
	if err != nil {
		return err
	}

	opts := &acrcloud.MonitorOptions{Region: *region, Realtime: *realtime, Record: *record}

	ctx := context.Background()
	switch action {
	case "list":
		if *project == "" {
			return fmt.Errorf("monitors list: --project is required")
		}
		return printResult(console.GetAllMonitors(ctx, *project))
	case "get":
		id, err := requireArg(flags, "stream id")
		if err != nil {
			return err
		}
		return printResult(console.GetMonitor(ctx, id))
	case "add":
		if *project == "" || *streamName == "" || *streamURL == "" {
			return fmt.Errorf("monitors add: --project, --name and --url are required")
		}
		return printResult(console.AddMonitor(ctx, *project, *streamName, *streamURL, opts))
	case "update":
		id, err := requireArg(flags, "stream id")
		if err != nil {
			return err
		}
		if *streamName == "" || *streamURL == "" {
			return fmt.Errorf("monitors update: --name and --url are required")
		}
		return printResult(console.UpdateMonitor(ctx, id, *streamName, *streamURL, opts))
	case "delete":
		id, err := requireArg(flags, "stream id")
		if err != nil {
			return err
		}
		return printResult(console.DeleteMonitor(ctx, id))
	case "pause":
		id, err := requireArg(flags, "stream id")
		if err != nil {
			return err
		}
		return printResult(console.PauseMonitor(ctx, id))
	case "restart":
		id, err := requireArg(flags, "stream id")
		if err != nil {
			return err
		}
		return printResult(console.RestartMonitor(ctx, id))
	default:
		return fmt.Errorf("monitors: unknown action %q", action)
	}
}

func runResults(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("results: action required (last, current, recent, day, period, month)")
	}
	action := args[0]
	flags := pflag.NewFlagSet("results "+action, pflag.ContinueOnError)
	configPath, verbose := commonFlags(flags)
	limit := flags.Int("limit", 10, "number of recent results (1-100)")
	date := flags.String("date", "", "UTC day, YYYYMMDD")
	begin := flags.String("begin", "", "period start, YYYYMMDDHHMMSS UTC")
	end := flags.String("end", "", "period end, YYYYMMDDHHMMSS UTC (empty means now)")
	month := flags.String("month", "", "archive month, YYYYMM")
	out := flags.String("out", "", "write the month archive to this file")
	extract := flags.String("extract", "", "extract the month archive into this directory")
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	cfg, logger, err := loadConfig(*configPath, *verbose)
	if err != nil {
		return err
	}
	monitor, err := newStreamMonitor(cfg, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	switch action {
	case "last":
		return printResult(monitor.LastResults(ctx))
	case "current":
		return printResult(monitor.CurrentResults(ctx))
	case "recent":
		return printResult(monitor.MultipleLastResults(ctx, *limit))
	case "day":
		if *date == "" {
			return fmt.Errorf("results day: --date is required")
		}
		return printResult(monitor.DayResults(ctx, *date))
	case "period":
		if *begin == "" {
			return fmt.Errorf("results period: --begin is required")
		}
		return printResult(monitor.PeriodResults(ctx, *begin, *end))
	case "month":
		if *month == "" {
			return fmt.Errorf("results month: --month is required")
		}
		return saveMonth(ctx, monitor, *month, *out, *extract)
	default:
		return fmt.Errorf("results: unknown action %q", action)
	}
}

// saveMonth downloads the monthly zip and writes or extracts it locally.
func saveMonth(ctx context.Context, monitor *acrcloud.StreamMonitor, month, out, extract string) error {
	data, err := monitor.MonthResults(ctx, month)
	var serverErr *acrcloud.ServerError
	if errors.As(err, &serverErr) {
		return fmt.Errorf("server returned status %d: %s", serverErr.StatusCode, serverErr.Body)
	}
	if err != nil {
		return err
	}

	if out == "" && extract == "" {
		out = month + ".zip"
	}
	if out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("writing archive: %w", err)
		}
		fmt.Printf("wrote %s (%d bytes)\n", out, len(data))
	}
	if extract != "" {
		names, err := archive.List(data)
		if err != nil {
			return err
		}
		if err := archive.Extract(data, extract); err != nil {
			return err
		}
		fmt.Printf("extracted %d files into %s\n", len(names), extract)
	}
	return nil
}

func runWatch(args []string) error {
	flags := pflag.NewFlagSet("watch", pflag.ContinueOnError)
	configPath, verbose := commonFlags(flags)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := loadConfig(*configPath, *verbose)
	if err != nil {
		return err
	}
	monitor, err := newStreamMonitor(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watch := ui.NewWatch(ui.WatchConfig{
		Results:  library.NewACRCloudResults(monitor),
		StreamID: monitor.StreamID(),
		Interval: cfg.Watch.GetInterval(),
		History:  cfg.Watch.History,
		Logger:   logger,
	})
	return watch.Run(ctx)
}

// requireArg returns the single positional argument of an action.
func requireArg(flags *pflag.FlagSet, what string) (string, error) {
	if flags.NArg() < 1 {
		return "", fmt.Errorf("%s: %s argument required", flags.Name(), what)
	}
	return flags.Arg(0), nil
}
