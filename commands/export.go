package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/awsops/s3-mpu-lifecycle/lifecycle"
)

// exporter writes per-bucket lifecycle configuration snapshots into a
// directory: <bucket>.current.json and <bucket>.proposed.json.
type exporter struct {
	dir string
}

func (e exporter) exportCurrent(bucket string, view []byte) error {
	return e.save(fmt.Sprintf("%v.current.json", bucket), view)
}

func (e exporter) exportProposed(bucket string, view []byte) error {
	return e.save(fmt.Sprintf("%v.proposed.json", bucket), view)
}

func (e exporter) exportChange(bucket string, change lifecycle.Change) error {
	if err := e.exportCurrent(bucket, change.Current); err != nil {
		return err
	}

	return e.exportProposed(bucket, change.Proposed)
}

func (e exporter) save(filename string, view []byte) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	file := filepath.Join(e.dir, filename)

	debugf("exporting %v", file)

	if err := os.WriteFile(file, append(view, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %v: %w", file, err)
	}

	return nil
}
