package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/awsops/s3-mpu-lifecycle/lifecycle"
)

// Show fetches and displays the current lifecycle configuration for each
// bucket without proposing or applying anything.
type Show struct {
	awsOptions
	bucketOptions

	exportDir string
	workers   int

	stdout io.Writer
	mu     sync.Mutex
}

func NewShowCmd() *cobra.Command {
	s := Show{
		awsOptions: awsOptions{region: DEFAULT_REGION},
		workers:    DEFAULT_WORKERS,
		stdout:     os.Stdout,
	}

	cmd := cobra.Command{
		Use:   "show",
		Short: "Display current bucket lifecycle configurations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.Execute(cmd.Context())
		},
	}

	s.awsOptions.addFlags(&cmd)
	s.bucketOptions.addFlags(&cmd)

	cmd.Flags().StringVar(&s.exportDir, "export-dir", s.exportDir, "Directory for <bucket>.current.json exports")
	cmd.Flags().IntVar(&s.workers, "workers", s.workers, "Buckets fetched concurrently")

	return &cmd
}

func (s *Show) Execute(ctx context.Context) error {
	if s.workers <= 0 {
		return fmt.Errorf("invalid --workers %v (must be a positive integer)", s.workers)
	}

	buckets, err := s.bucketOptions.resolve()
	if err != nil {
		return err
	}

	client, err := newS3Client(s.awsOptions)
	if err != nil {
		return err
	}

	return s.execute(ctx, client, buckets)
}

func (s *Show) execute(ctx context.Context, store lifecycleStore, buckets []string) error {
	sum := summary{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, bucket := range buckets {
		bucket := bucket
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			s.show(bucket, store, &sum)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if n := sum.failed(); n > 0 {
		return fmt.Errorf("%v of %v bucket(s) failed", n, len(buckets))
	}

	return nil
}

func (s *Show) show(bucket string, store lifecycleStore, sum *summary) {
	skip, err := store.probe(bucket)
	if err != nil {
		errorf("%v: %v", bucket, err)
		sum.recordError(bucket, err)

		return
	}

	if skip != "" {
		warnf("%v: skipped (%v)", bucket, skip)
		sum.recordSkipped(bucket, skip)

		return
	}

	current, err := store.getLifecycle(bucket)
	if err != nil {
		errorf("%v: %v", bucket, err)
		sum.recordError(bucket, err)

		return
	}

	view, err := lifecycle.Encode(current)
	if err != nil {
		errorf("%v: %v", bucket, err)
		sum.recordError(bucket, err)

		return
	}

	s.mu.Lock()
	fmt.Fprintf(s.stdout, "\n--- %v : CURRENT RULES ---\n%s\n", bucket, view)
	s.mu.Unlock()

	if s.exportDir != "" {
		if err := (exporter{dir: s.exportDir}).exportCurrent(bucket, view); err != nil {
			errorf("%v: %v", bucket, err)
			sum.recordError(bucket, err)
		}
	}
}
