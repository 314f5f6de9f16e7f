package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/redis/go-redis/v9"

	redisadapter "github.com/target/penuel-portal/internal/adapters/redis"
	"github.com/target/penuel-portal/internal/bootstrap"
	domainauth "github.com/target/penuel-portal/internal/domain/auth"
	"github.com/target/penuel-portal/internal/ports"
)

var errHandleRequired = errors.New("a session handle is required")

func parseHandle(name string, args []string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 || fs.Arg(0) == "" {
		return "", errHandleRequired
	}
	return fs.Arg(0), nil
}

// withSessionStore connects Redis for the duration of fn.
func withSessionStore(cmdCtx *commandContext, fn func(ports.SessionStore) error) error {
	client, err := bootstrap.ConnectRedis(cmdCtx.Ctx, cmdCtx.Config.Redis, cmdCtx.Logger)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func(c redis.UniversalClient) {
		if closeErr := c.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}(client)
	return fn(redisadapter.NewSessionStoreWithPrefix(client, cmdCtx.Config.Redis.KeyPrefix))
}

func runSessionShow(cmdCtx *commandContext, args []string) error {
	handle, err := parseHandle("session-show", args)
	if err != nil {
		return err
	}
	return withSessionStore(cmdCtx, func(store ports.SessionStore) error {
		return showSession(cmdCtx.Ctx, cmdCtx.Out, store, handle)
	})
}

func runSessionClear(cmdCtx *commandContext, args []string) error {
	handle, err := parseHandle("session-clear", args)
	if err != nil {
		return err
	}
	return withSessionStore(cmdCtx, func(store ports.SessionStore) error {
		return clearSession(cmdCtx.Ctx, cmdCtx.Out, store, handle)
	})
}

func sessionState(s domainauth.Session) string {
	switch {
	case s.IsEmpty():
		return "absent"
	case s.IsComplete():
		return "complete"
	default:
		return "partial"
	}
}

func showSession(ctx context.Context, w io.Writer, store ports.SessionStore, handle string) error {
	sess, err := store.Read(ctx, handle)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"handle", handle},
		{"state", sessionState(sess)},
		{"authenticated", fmt.Sprintf("%t", sess.Authenticated)},
		{"role", string(sess.Role)},
		{"department", string(sess.Department)},
		{"subject", sess.Subject},
		{"landing", domainauth.LandingPath(sess)},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// clearSession removes every field of the record; clearing an absent handle is not an error.
func clearSession(ctx context.Context, w io.Writer, store ports.SessionStore, handle string) error {
	sess, err := store.Read(ctx, handle)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if err := store.Clear(ctx, handle); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return writef(w, "cleared session %s (was %s)\n", handle, sessionState(sess))
}
