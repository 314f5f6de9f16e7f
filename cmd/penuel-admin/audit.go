package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/target/penuel-portal/internal/bootstrap"
	"github.com/target/penuel-portal/internal/data"
	"github.com/target/penuel-portal/internal/ports"
)

const defaultMigrationTimeout = 5 * time.Minute

type migrateOptions struct {
	Timeout time.Duration
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	opts := migrateOptions{}
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.DurationVar(&opts.Timeout, "timeout", defaultMigrationTimeout, "maximum time to wait for migrations")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultMigrationTimeout
	}
	return opts, nil
}

func withDB(ctx context.Context, cmdCtx *commandContext, fn func(*sql.DB) error) error {
	db, err := bootstrap.ConnectDB(ctx, cmdCtx.Config.Postgres, cmdCtx.Logger)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()
	return fn(db)
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	return withDB(ctx, cmdCtx, func(db *sql.DB) error {
		cmdCtx.Logger.Info("running database migrations")
		return bootstrap.RunMigrations(ctx, db, cmdCtx.Logger)
	})
}

func parseTailFlags(args []string) (int, error) {
	fs := flag.NewFlagSet("audit-tail", flag.ContinueOnError)
	n := fs.Int("n", data.DefaultAuditListLimit, "number of events to print")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	if *n <= 0 {
		return 0, fmt.Errorf("-n must be positive, got %d", *n)
	}
	return *n, nil
}

func runAuditTail(cmdCtx *commandContext, args []string) error {
	n, err := parseTailFlags(args)
	if err != nil {
		return err
	}
	return withDB(cmdCtx.Ctx, cmdCtx, func(db *sql.DB) error {
		events, listErr := data.NewAuditRepo(db).List(cmdCtx.Ctx, n)
		if listErr != nil {
			return fmt.Errorf("list audit events: %w", listErr)
		}
		return printAuditEvents(cmdCtx.Out, events)
	})
}

func printAuditEvents(w io.Writer, events []ports.AuditEvent) error {
	if len(events) == 0 {
		return writef(w, "no audit events\n")
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "TIME\tOUTCOME\tSUBJECT\tROLE\tDEPARTMENT"); err != nil {
		return err
	}
	for _, ev := range events {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			ev.OccurredAt.UTC().Format(time.RFC3339), ev.Outcome, dash(ev.Subject), dash(string(ev.Role)), dash(string(ev.Department))); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
