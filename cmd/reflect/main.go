package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/AnshRaj112/reflect-backend/internal/cli"
	"github.com/AnshRaj112/reflect-backend/internal/config"
	"github.com/AnshRaj112/reflect-backend/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag

	Signup      cli.SignupCmd `cmd:"" help:"Create an anonymous account and sign in."`
	Login       cli.LoginCmd  `cmd:"" help:"Sign in and remember the session in the OS keyring."`
	Logout      cli.LogoutCmd `cmd:"" help:"Sign out and forget the session."`
	Write       cli.WriteCmd  `cmd:"" help:"Write a new journal entry, or edit one with --edit." default:"1"`
	Collections struct {
		List   cli.CollectionsListCmd   `cmd:"" help:"List your collections." default:"1"`
		Create cli.CollectionsCreateCmd `cmd:"" help:"Create a collection."`
	} `cmd:"" help:"Manage collections."`
	Moods cli.MoodsCmd `cmd:"" help:"Show the mood catalog."`
}

func main() {
	envErr := loadEnv()
	cfg := config.LoadClient()

	kctx := kong.Parse(&CLI,
		kong.Name("reflect"),
		kong.Description("Private journaling from the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{Debug: cfg.LogDebug, Dir: cfg.LogDir, Prefix: "reflect", Quiet: true}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if envErr != nil {
		logger.Debug("no .env file found", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := kctx.Run(cli.NewContext(ctx, cfg.APIURL, cfg.Token)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadEnv reads .env (or the given files) into the environment. A missing
// file is reported but not fatal; the client also runs from plain env vars.
func loadEnv(files ...string) error {
	return godotenv.Load(files...)
}
