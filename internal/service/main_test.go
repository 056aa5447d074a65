package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stazhbg/internship-portal/internal/registry"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSeededRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg, err := registry.Seed(testLogger())
	require.NoError(t, err)

	return reg
}
