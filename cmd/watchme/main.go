package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/glizzus/watchme/internal/config"
	"github.com/glizzus/watchme/internal/crontab"
	"github.com/glizzus/watchme/internal/presenters"
	"github.com/glizzus/watchme/internal/schedule"
	"github.com/urfave/cli/v2"
)

var userFlag = &cli.StringFlag{
	Name:  "user",
	Usage: "crontab owner, defaults to WATCHME_CRONTAB_USER or the running user",
}

// exitOnUserError turns input errors into a non-zero exit with their message.
func exitOnUserError(err error) error {
	var already *schedule.AlreadyScheduledError
	var rangeErr *schedule.FieldRangeError
	if errors.As(err, &already) || errors.As(err, &rangeErr) {
		return cli.Exit(err.Error(), 1)
	}
	return err
}

func watcherName(c *cli.Context) (string, error) {
	name := c.Args().First()
	if name == "" {
		return "", cli.Exit("Please provide a watcher name", 1)
	}
	return name, nil
}

func newApp(store crontab.Store, defaultUser string, out io.Writer) *cli.App {
	newWatcher := func(name string) *schedule.Watcher {
		w := schedule.NewWatcher(name, store)
		w.User = defaultUser
		return w
	}

	return &cli.App{
		Name:        "watchme",
		Usage:       "Schedule watchers in your crontab",
		Description: "Adds, inspects and removes the cron entries that run 'watchme run <name>'",
		Writer:      out,
		Commands: []*cli.Command{
			{
				Name:      "schedule",
				Usage:     "Add a cron entry that runs a watcher",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "minute", Value: "12", Usage: "0-59 or *"},
					&cli.StringFlag{Name: "hour", Value: "0", Usage: "0-23 or *"},
					&cli.StringFlag{Name: "day", Value: schedule.Every, Usage: "1-31 or *"},
					&cli.StringFlag{Name: "month", Value: schedule.Every, Usage: "1-12 or *"},
					&cli.StringFlag{Name: "weekday", Value: schedule.Every, Usage: "0-6 or *"},
					&cli.BoolFlag{Name: "force", Usage: "replace an existing schedule"},
					userFlag,
				},
				Action: func(c *cli.Context) error {
					name, err := watcherName(c)
					if err != nil {
						return err
					}

					entry, err := newWatcher(name).Schedule(c.Context, schedule.ScheduleOptions{
						Minute:  c.String("minute"),
						Hour:    c.String("hour"),
						Day:     c.String("day"),
						Month:   c.String("month"),
						Weekday: c.String("weekday"),
						User:    c.String("user"),
						Force:   c.Bool("force"),
					})
					if err != nil {
						return exitOnUserError(err)
					}

					fmt.Fprintln(c.App.Writer, entry.String())
					return nil
				},
			},
			{
				Name:      "unschedule",
				Usage:     "Remove the cron entry of a watcher",
				ArgsUsage: "<name>",
				Flags:     []cli.Flag{userFlag},
				Action: func(c *cli.Context) error {
					name, err := watcherName(c)
					if err != nil {
						return err
					}

					removed, err := newWatcher(name).RemoveSchedule(c.Context, name, c.String("user"))
					if err != nil {
						return err
					}
					if !removed {
						fmt.Fprintf(c.App.Writer, "%s does not have a schedule\n", name)
						return nil
					}
					fmt.Fprintf(c.App.Writer, "Removed schedule for %s\n", name)
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "Show the cron entry of a watcher and its next run times",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "runs", Value: 5, Usage: "number of upcoming run times to print"},
					userFlag,
				},
				Action: func(c *cli.Context) error {
					name, err := watcherName(c)
					if err != nil {
						return err
					}

					w := newWatcher(name)
					entry, err := w.GetJob(c.Context, c.String("user"))
					if err != nil {
						return err
					}

					var runs []time.Time
					if entry != nil && c.Int("runs") > 0 {
						runs, err = w.NextRuns(c.Context, c.String("user"), time.Now(), c.Int("runs"))
						if err != nil {
							return err
						}
					}

					fmt.Fprintln(c.App.Writer, presenters.BuildScheduleDetails(name, entry, runs))
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List every scheduled watcher",
				Flags: []cli.Flag{userFlag},
				Action: func(c *cli.Context) error {
					user := c.String("user")
					if user == "" {
						user = defaultUser
					}

					entries, err := schedule.Scheduled(c.Context, store, user)
					if err != nil {
						return err
					}

					fmt.Fprintln(c.App.Writer, presenters.BuildScheduleList(entries))
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "Remove the cron entries of all watchers",
				Flags: []cli.Flag{userFlag},
				Action: func(c *cli.Context) error {
					w := newWatcher("")
					if user := c.String("user"); user != "" {
						w.User = user
					}
					if _, err := w.ClearSchedule(c.Context); err != nil {
						return err
					}

					fmt.Fprintln(c.App.Writer, "Cleared all watcher schedules")
					return nil
				},
			},
		},
	}
}

func run() error {
	if err := config.LoadEnv(); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	logConfig, err := config.NewLogConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load log config: %w", err)
	}
	level, _ := logConfig.SlogLevel()
	slog.SetLogLoggerLevel(level)

	crontabConfig, err := config.NewCrontabConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load crontab config: %w", err)
	}

	return newApp(crontabConfig.Store(), crontabConfig.User, os.Stdout).Run(os.Args)
}

func main() {
	if err := run(); err != nil {
		slog.Error("watchme encountered an error", slog.Any("error", err))
		os.Exit(1)
	}
}
