package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"readygate"
)

type CliFlags struct {
	Cfg      *string
	Probe    *string
	Port     *int
	User     *string
	Interval *string
	Timeout  *string
	Spawn    *bool
	Debug    *bool
	JsonLogs *bool
}

func main() {

	godotenv.Load()

	cli := CliFlags{
		Cfg:      flag.String("cfg", "", "config file location (waits for every probe listed in it)"),
		Probe:    flag.String("probe", "postgres", "probe type for the host argument: postgres, tcp, http, icmp, redis"),
		Port:     flag.Int("port", 0, "probe port override"),
		User:     flag.String("user", "", "database user (defaults to $PGUSER)"),
		Interval: flag.String("interval", "2s", "delay between probe attempts"),
		Timeout:  flag.String("timeout", "5s", "single probe attempt timeout"),
		Spawn:    flag.Bool("spawn", false, "run the command as a child process instead of replacing the gate"),
		Debug:    flag.Bool("debug", false, "enable debug logging"),
		JsonLogs: flag.Bool("json_logs", false, "log in json format"),
	}
	flag.Parse()

	if os.Getenv("DEBUG") == "true" || *cli.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if os.Getenv("LOGFMT") == "json" || *cli.JsonLogs {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}

	interval, err := readygate.ParseDuration(*cli.Interval)
	if err != nil {
		slog.Error("Invalid interval value",
			slog.String("err", err.Error()))
		os.Exit(1)
	}

	timeout, err := readygate.ParseDuration(*cli.Timeout)
	if err != nil {
		slog.Error("Invalid timeout value",
			slog.String("err", err.Error()))
		os.Exit(1)
	}

	args := flag.Args()

	var probes []readygate.Probe
	var command []string

	if *cli.Cfg != "" {

		cfg, err := LoadConfigFile(*cli.Cfg)
		if err != nil {
			slog.Error("Failed to load config",
				slog.String("err", err.Error()))
			os.Exit(1)
		}

		probes = cfg.Probes.Load()
		command = args

	} else {

		if len(args) < 1 {
			fmt.Fprintf(os.Stderr, "usage: %s [flags] <host> <command> [args...]\n", os.Args[0])
			os.Exit(1)
		}

		probe, err := newHostProbe(*cli.Probe, args[0], cli, readygate.Duration(timeout))
		if err != nil {
			slog.Error("Failed to load probe",
				slog.String("host", args[0]),
				slog.String("err", err.Error()))
			os.Exit(1)
		}

		probes = []readygate.Probe{probe}
		command = args[1:]
	}

	if len(command) > 0 && command[0] == "--" {
		command = command[1:]
	}

	for _, probe := range probes {

		if err := probe.Validate(); err != nil {
			slog.Error("Failed to load probe",
				slog.String("id", probe.ID()),
				slog.String("err", err.Error()))
			os.Exit(1)
		}

		slog.Info("Add probe",
			slog.String("id", probe.ID()),
			slog.String("type", probe.Type()))
	}

	gate := readygate.Gate{
		Probes:   probes,
		Interval: interval,
	}

	attempts, err := gate.Wait(context.Background())
	if err != nil {
		slog.Error("Gate wait interrupted",
			slog.String("err", err.Error()))
		os.Exit(1)
	}

	slog.Info("Dependencies ready",
		slog.Int("attempts", attempts))

	if *cli.Spawn {

		code, err := readygate.Spawn(command)
		if err != nil {
			slog.Error("Failed to run command",
				slog.String("err", err.Error()))
			os.Exit(1)
		}

		os.Exit(code)
	}

	if err := readygate.Exec(command); err != nil {
		slog.Error("Failed to exec command",
			slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func newHostProbe(kind string, host string, cli CliFlags, timeout readygate.Duration) (readygate.Probe, error) {

	switch kind {

	case "postgres":
		return &readygate.PostgresProbe{
			Label: host,
			PostgresProbeOptions: readygate.PostgresProbeOptions{
				Host:    host,
				Port:    *cli.Port,
				User:    *cli.User,
				Timeout: timeout,
			},
		}, nil

	case "tcp":
		return &readygate.TcpProbe{
			Label: host,
			TcpProbeOptions: readygate.TcpProbeOptions{
				Host:    host,
				Port:    *cli.Port,
				Timeout: timeout,
			},
		}, nil

	case "http":
		return &readygate.HttpProbe{
			Label: host,
			HttpProbeOptions: readygate.HttpProbeOptions{
				Url:     host,
				Timeout: timeout,
			},
		}, nil

	case "icmp":
		return &readygate.IcmpProbe{
			Label: host,
			IcmpProbeOptions: readygate.IcmpProbeOptions{
				Host:    host,
				Timeout: timeout,
			},
		}, nil

	case "redis":
		return &readygate.RedisProbe{
			Label: host,
			RedisProbeOptions: readygate.RedisProbeOptions{
				Host:    host,
				Port:    *cli.Port,
				Timeout: timeout,
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown probe type '%s'", kind)
	}
}
