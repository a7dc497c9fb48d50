package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awsops/s3-mpu-lifecycle/lifecycle"
)

func TestShowPrintsCurrentRules(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.rules["b"] = lifecycle.RuleSet{
		Rules: []lifecycle.Rule{
			{ID: "expire-logs", Status: lifecycle.StatusEnabled, Filter: &lifecycle.Filter{Prefix: ptr("logs/")}},
		},
	}

	out := bytes.Buffer{}
	s := Show{workers: 2, stdout: &out}

	err := s.execute(context.Background(), store, []string{"b"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "--- b : CURRENT RULES ---")
	assert.Contains(t, out.String(), "expire-logs")
	assert.Empty(t, store.puts)
}

func TestShowExportsCurrentRules(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "export")

	store := newFakeStore()

	s := Show{workers: 1, exportDir: dir, stdout: &bytes.Buffer{}}

	require.NoError(t, s.execute(context.Background(), store, []string{"b"}))

	view, err := os.ReadFile(filepath.Join(dir, "b.current.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Rules": []}`, string(view))
}

func TestShowReportsFetchFailures(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.getErr["bad"] = errors.New("throttled")

	s := Show{workers: 2, stdout: &bytes.Buffer{}}

	err := s.execute(context.Background(), store, []string{"bad", "good"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
}
