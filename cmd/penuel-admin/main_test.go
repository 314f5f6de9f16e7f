package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/penuel-portal/internal/domain/auth"
	mockauth "github.com/target/penuel-portal/internal/mocks/auth"
	"github.com/target/penuel-portal/internal/ports"
)

func TestPrintUsageListsCommands(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))

	out := buf.String()
	for name := range commands() {
		assert.Contains(t, out, name)
	}
	assert.Less(t, strings.Index(out, "audit-tail"), strings.Index(out, "session-show"), "commands are sorted")
}

func TestParseHandle(t *testing.T) {
	h, err := parseHandle("session-show", []string{"abc"})
	require.NoError(t, err)
	assert.Equal(t, "abc", h)

	_, err = parseHandle("session-show", nil)
	assert.ErrorIs(t, err, errHandleRequired)

	_, err = parseHandle("session-show", []string{"a", "b"})
	assert.ErrorIs(t, err, errHandleRequired)
}

func TestShowSession(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	require.NoError(t, store.Write(context.Background(), "h1", domainauth.Session{
		Authenticated: true, Role: domainauth.RoleStaff, Department: domainauth.DepartmentCarWash, Subject: "carwash@penuel.com",
	}))
	store.Put("ghost", map[string]string{domainauth.FieldAuthenticated: "true"})

	var buf bytes.Buffer
	require.NoError(t, showSession(context.Background(), &buf, store, "h1"))
	assert.Contains(t, buf.String(), "complete")
	assert.Contains(t, buf.String(), "carwash@penuel.com")
	assert.Contains(t, buf.String(), domainauth.StaffLandingPath)

	buf.Reset()
	require.NoError(t, showSession(context.Background(), &buf, store, "ghost"))
	assert.Contains(t, buf.String(), "partial")

	buf.Reset()
	require.NoError(t, showSession(context.Background(), &buf, store, "missing"))
	assert.Contains(t, buf.String(), "absent")
}

func TestClearSession(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	store.Put("ghost", map[string]string{domainauth.FieldRole: "owner"})

	var buf bytes.Buffer
	require.NoError(t, clearSession(context.Background(), &buf, store, "ghost"))
	assert.Nil(t, store.Fields("ghost"))
	assert.Contains(t, buf.String(), "was partial")

	buf.Reset()
	require.NoError(t, clearSession(context.Background(), &buf, store, "ghost"))
	assert.Contains(t, buf.String(), "was absent")

	store.ClearErr = assert.AnError
	assert.ErrorIs(t, clearSession(context.Background(), &buf, store, "ghost"), assert.AnError)
}

func TestParseTailFlags(t *testing.T) {
	n, err := parseTailFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	n, err = parseTailFlags([]string{"-n", "5"})
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = parseTailFlags([]string{"-n", "0"})
	assert.Error(t, err)
}

func TestParseMigrateFlags(t *testing.T) {
	opts, err := parseMigrateFlags([]string{"-timeout", "30s"})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, opts.Timeout)

	opts, err = parseMigrateFlags([]string{"-timeout", "-1s"})
	require.NoError(t, err)
	assert.Equal(t, defaultMigrationTimeout, opts.Timeout)
}

func TestPrintAuditEvents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printAuditEvents(&buf, nil))
	assert.Equal(t, "no audit events\n", buf.String())

	buf.Reset()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, printAuditEvents(&buf, []ports.AuditEvent{
		{Outcome: ports.AuditLoginSucceeded, Subject: "owner@penuel.com", Role: domainauth.RoleOwner, Department: domainauth.DepartmentExecutive, OccurredAt: at},
		{Outcome: ports.AuditSelfHeal, OccurredAt: at},
	}))
	out := buf.String()
	assert.Contains(t, out, "2026-03-01T12:00:00Z")
	assert.Contains(t, out, "login_succeeded")
	assert.Contains(t, out, "self_heal")
	assert.Contains(t, out, "-")
}
