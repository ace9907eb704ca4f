// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func competitionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "competition",
			Usage: "Competition ID (defaults to match.competition_id)",
		},
		&cli.IntFlag{
			Name:  "season",
			Usage: "Season ID (defaults to match.season_id)",
		},
	}
}

func matchIDFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "match-id",
		Aliases: []string{"m"},
		Usage:   "Match ID (defaults to the configured home team's first match)",
	}
}

// replayCommand opens a specific match, loading it inside the TUI
func replayCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "replay",
		Usage:  "Replay a match in the terminal",
		Flags:  []cli.Flag{matchIDFlag()},
		Action: r.ReplayMatch,
	}
}

// matchesCommand lists the matches of a competition season
func matchesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "matches",
		Usage:  "List the matches of a competition season",
		Flags:  competitionFlags(),
		Action: r.Matches,
	}
}

// summaryCommand prints the replay summary of a match
func summaryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "summary",
		Usage:  "Load a match and print its replay summary",
		Flags:  []cli.Flag{matchIDFlag()},
		Action: r.Summary,
	}
}

// exportCommand handles data exports
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export match data",
		Commands: []*cli.Command{
			{
				Name:  "events",
				Usage: "Write the normalized events of a match as CSV",
				Flags: []cli.Flag{
					matchIDFlag(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "./events.csv",
					},
				},
				Action: r.ExportEvents,
			},
		},
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Create config.toml if missing and run cache migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Revert the most recent migration",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

func kindFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "kind",
		Usage: "Payload kind (matches, events, three-sixty); empty means all",
	}
}

// cacheCommand handles the provider payload cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage cached provider payloads",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List cached payloads",
				Flags:  []cli.Flag{kindFlag()},
				Action: r.CacheList,
			},
			{
				Name:   "clear",
				Usage:  "Remove cached payloads",
				Flags:  []cli.Flag{kindFlag()},
				Action: r.CacheClear,
			},
			{
				Name:  "warm",
				Usage: "Fetch every match of a season into the cache",
				Flags: append(competitionFlags(), &cli.IntFlag{
					Name:  "workers",
					Usage: "Concurrent workers",
					Value: 4,
				}),
				Action: r.CacheWarm,
			},
		},
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		replayCommand, matchesCommand, summaryCommand, exportCommand, setupCommand, cacheCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}
