package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/starford/vaultpress/internal"
	"github.com/starford/vaultpress/internal/models"
	pkgconfig "github.com/starford/vaultpress/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runSync(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := os.Stdout
	printBanner(out, "Vault → Site Sync")

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithConfirm(func(d *models.DiscoveryResult) (bool, error) {
			printDiscovery(out, d)
			if cmd.Bool("yes") {
				return true, nil
			}
			return confirm(os.Stdin, out, "Continue with sync?", true)
		}),
	}
	if cmd.Bool("no-purge") {
		opts = append(opts, internal.WithoutPurge())
	}

	report, err := internal.Sync(opts...)
	if report != nil {
		printSyncReport(out, report)
	}
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return nil
}

func runClean(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := os.Stdout
	printBanner(out, "Clean Synced Content")

	if !cmd.Bool("yes") {
		ok, err := doubleConfirm(os.Stdin, out, "delete ALL published documents and images")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Clean cancelled.")
			return nil
		}
	}

	results, err := internal.Clean(internal.WithConfig(cfg))
	if err != nil {
		return fmt.Errorf("clean failed: %w", err)
	}
	printPurge(out, results)
	fmt.Fprintln(out, "Clean complete.")
	return nil
}

func runHistory(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runs, err := internal.History(int(cmd.Int("limit")), internal.WithConfig(cfg))
	if err != nil {
		return err
	}
	printHistory(os.Stdout, runs)
	return nil
}

func yesFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip confirmation prompts",
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "vaultpress",
		Usage: "Publish exposed notes from a Markdown vault into a static site",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (optional; environment defaults apply when absent)",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "sync",
				Usage:  "Publish every exposed note and its images",
				Action: runSync,
				Flags: []cli.Flag{
					yesFlag(),
					&cli.BoolFlag{
						Name:  "no-purge",
						Usage: "Keep existing output instead of emptying it first",
					},
				},
			},
			{
				Name:   "clean",
				Usage:  "Delete all published documents and images (requires confirmation)",
				Action: runClean,
				Flags:  []cli.Flag{yesFlag()},
			},
			{
				Name:   "history",
				Usage:  "List recent sync runs from the ledger",
				Action: runHistory,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of runs to show",
						Value: 10,
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
