package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awsops/s3-mpu-lifecycle/lifecycle"
)

func TestExporterWritesBothViews(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "export")

	current := lifecycle.RuleSet{}
	proposed := lifecycle.Propose(current, 7, lifecycle.VersionAuto)

	change, err := lifecycle.Describe(current, proposed)
	require.NoError(t, err)

	require.NoError(t, exporter{dir: dir}.exportChange("my-bucket", change))

	cur, err := os.ReadFile(filepath.Join(dir, "my-bucket.current.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Rules": []}`, string(cur))
	assert.Equal(t, byte('\n'), cur[len(cur)-1])

	pro, err := os.ReadFile(filepath.Join(dir, "my-bucket.proposed.json"))
	require.NoError(t, err)
	assert.Contains(t, string(pro), "abort-multipart-after-7-days")
}
