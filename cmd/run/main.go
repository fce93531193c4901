// Command run supervises a single program under CPU, memory and
// wall-clock limits and writes the four-line verdict report consumed by
// the pygon grading harness.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v3"

	"github.com/tsarn/pygon-run/internal/behave"
	"github.com/tsarn/pygon-run/internal/environment"
	"github.com/tsarn/pygon-run/internal/report"
	"github.com/tsarn/pygon-run/internal/report/natsgath"
	"github.com/tsarn/pygon-run/internal/report/sqsgath"
	"github.com/tsarn/pygon-run/internal/report/termgath"
	"github.com/tsarn/pygon-run/internal/supervise"
)

func main() {
	cfg := environment.ReadEnvConfig()

	cmd := &cli.Command{
		Name:      "run",
		Usage:     "supervise one untrusted program under cpu, memory and wall-clock limits",
		ArgsUsage: "<command> [args...]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "cpu-ms", Usage: "cpu time budget in milliseconds"},
			&cli.IntFlag{Name: "mem-mb", Usage: "memory budget in megabytes"},
			&cli.IntFlag{Name: "wall-ms", Usage: "wall-clock budget in milliseconds"},
			&cli.StringFlag{Name: "report", Usage: "path of the report file to write"},
			&cli.StringFlag{Name: "nats-url", Usage: "publish the report to this NATS server"},
			&cli.StringFlag{Name: "nats-subject", Usage: "NATS subject to publish to"},
			&cli.StringFlag{Name: "sqs-url", Usage: "publish the report to this SQS queue"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "no terminal output"},
			&cli.BoolFlag{Name: "verbose", Usage: "debug logging"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd.Bool("verbose"))

			argv := cmd.Args().Slice()
			if len(argv) == 0 {
				return fmt.Errorf("no command to run")
			}

			lim := supervise.Limits{
				CpuMs:  cfg.DefaultCpuMs,
				MemMB:  cfg.DefaultMemMB,
				WallMs: cfg.DefaultWallMs,
			}
			if cmd.IsSet("cpu-ms") {
				lim.CpuMs = int64(cmd.Int("cpu-ms"))
			}
			if cmd.IsSet("mem-mb") {
				lim.MemMB = int64(cmd.Int("mem-mb"))
			}
			if cmd.IsSet("wall-ms") {
				lim.WallMs = int64(cmd.Int("wall-ms"))
			}

			gatherers, err := buildGatherers(ctx, cfg, cmd)
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			for _, g := range gatherers {
				g.StartRun(runID, argv, lim)
			}

			res := supervise.Run(argv, lim)

			for _, g := range gatherers {
				g.FinishRun(runID, res)
			}
			for _, g := range gatherers {
				if c, ok := g.(interface{ Close() }); ok {
					c.Close()
				}
			}

			reportPath := cfg.ReportPath
			if cmd.IsSet("report") {
				reportPath = cmd.String("report")
			}
			if reportPath != "" {
				if err := report.WriteFile(reportPath, res); err != nil {
					return err
				}
			}
			return nil
		},
		Commands: []*cli.Command{
			behaveCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}

func buildGatherers(ctx context.Context, cfg *environment.EnvConfig, cmd *cli.Command) ([]report.Gatherer, error) {
	var gatherers []report.Gatherer
	if !cmd.Bool("quiet") {
		gatherers = append(gatherers, termgath.New())
	}

	natsURL := cfg.NatsURL
	if cmd.IsSet("nats-url") {
		natsURL = cmd.String("nats-url")
	}
	if natsURL != "" {
		subject := cfg.NatsSubject
		if cmd.IsSet("nats-subject") {
			subject = cmd.String("nats-subject")
		}
		g, err := natsgath.New(natsURL, subject)
		if err != nil {
			return nil, err
		}
		gatherers = append(gatherers, g)
	}

	sqsURL := cfg.SqsQueueURL
	if cmd.IsSet("sqs-url") {
		sqsURL = cmd.String("sqs-url")
	}
	if sqsURL != "" {
		g, err := sqsgath.New(ctx, cfg.AwsRegion, sqsURL)
		if err != nil {
			return nil, err
		}
		gatherers = append(gatherers, g)
	}
	return gatherers, nil
}

func behaveCommand() *cli.Command {
	return &cli.Command{
		Name:      "behave",
		Usage:     "run a TOML scenario suite against the supervisor",
		ArgsUsage: "<suite.toml>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Usage: "scenarios to run concurrently"},
			&cli.BoolFlag{Name: "verbose", Usage: "debug logging"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd.Bool("verbose"))

			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one suite file")
			}
			cases, err := behave.Parse(cmd.Args().First())
			if err != nil {
				return err
			}

			jobs := 4
			if cmd.IsSet("jobs") {
				jobs = int(cmd.Int("jobs"))
			}

			failed := 0
			for _, out := range behave.RunSuite(cases, jobs) {
				if out.Pass {
					fmt.Printf("%s %s (%s exit=%d cpu=%dms mem=%dMB)\n",
						color.GreenString("PASS"), out.Case.Name,
						out.Result.Verdict, out.Result.ExitCode,
						out.Result.CpuMs, out.Result.MemoryMB)
					continue
				}
				failed++
				fmt.Printf("%s %s: %s\n", color.RedString("FAIL"), out.Case.Name, out.Reason)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(cases))
			}
			return nil
		},
	}
}
