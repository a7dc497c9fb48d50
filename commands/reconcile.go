package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/awsops/s3-mpu-lifecycle/lifecycle"
)

// Reconcile ensures every target bucket carries an enabled whole-bucket rule
// that aborts incomplete multipart uploads within the configured number of
// days. By default it only reports what would change; --apply replaces the
// bucket's lifecycle configuration with the proposal.
type Reconcile struct {
	awsOptions
	bucketOptions

	days          int
	apply         bool
	printRules    bool
	printProposed bool
	showDiff      bool
	exportDir     string
	version       string
	verify        bool
	workers       int

	stdout io.Writer
	mu     sync.Mutex
}

func NewReconcileCmd() *cobra.Command {
	r := Reconcile{
		awsOptions: awsOptions{region: DEFAULT_REGION},
		days:       DEFAULT_DAYS,
		version:    DEFAULT_VERSION,
		workers:    DEFAULT_WORKERS,
		stdout:     os.Stdout,
	}

	cmd := cobra.Command{
		Use:   "reconcile",
		Short: "Ensure buckets abort incomplete multipart uploads",
		Long: `Fetches each bucket's lifecycle configuration, checks for an enabled
whole-bucket abort-incomplete-multipart-upload rule within the day threshold
and, where one is missing, proposes (or with --apply, writes) a configuration
with the managed rule added. All other lifecycle rules are preserved verbatim
and in order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.Execute(cmd.Context())
		},
	}

	r.awsOptions.addFlags(&cmd)
	r.bucketOptions.addFlags(&cmd)

	cmd.Flags().IntVar(&r.days, "days", r.days, "Days after initiation before an incomplete multipart upload is aborted")
	cmd.Flags().BoolVar(&r.apply, "apply", r.apply, "Replace bucket lifecycle configurations (default is a dry run)")
	cmd.Flags().BoolVar(&r.printRules, "print-rules", r.printRules, "Print each bucket's current lifecycle rules")
	cmd.Flags().BoolVar(&r.printProposed, "print-proposed", r.printProposed, "Print each bucket's proposed lifecycle rules")
	cmd.Flags().BoolVar(&r.showDiff, "diff", r.showDiff, "Print a unified diff of current vs. proposed rules for changed buckets")
	cmd.Flags().StringVar(&r.exportDir, "export-dir", r.exportDir, "Directory for <bucket>.current.json and <bucket>.proposed.json exports")
	cmd.Flags().StringVar(&r.version, "lifecycle-version", r.version, "Managed rule style, one of: auto (detect from existing rules), v1 (legacy Prefix), v2 (Filter)")
	cmd.Flags().BoolVar(&r.verify, "verify", r.verify, "After applying, re-read the configuration and flag drift")
	cmd.Flags().IntVar(&r.workers, "workers", r.workers, "Buckets reconciled concurrently")

	return &cmd
}

func (r *Reconcile) Execute(ctx context.Context) error {
	if r.days <= 0 {
		return fmt.Errorf("invalid --days %v (must be a positive integer)", r.days)
	}

	version, err := lifecycle.ParseVersion(r.version)
	if err != nil {
		return err
	}

	if r.workers <= 0 {
		return fmt.Errorf("invalid --workers %v (must be a positive integer)", r.workers)
	}

	buckets, err := r.bucketOptions.resolve()
	if err != nil {
		return err
	}

	client, err := newS3Client(r.awsOptions)
	if err != nil {
		return err
	}

	return r.execute(ctx, client, buckets, version)
}

func (r *Reconcile) execute(ctx context.Context, store lifecycleStore, buckets []string, version lifecycle.Version) error {
	if r.apply {
		infof("reconciling %v bucket(s), threshold %v day(s)", len(buckets), r.days)
	} else {
		infof("reconciling %v bucket(s), threshold %v day(s) (dry run)", len(buckets), r.days)
	}

	sum := summary{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, bucket := range buckets {
		bucket := bucket
		g.Go(func() error {
			// a cancelled context stops further per-bucket calls; buckets
			// already in flight run to completion
			if err := ctx.Err(); err != nil {
				return err
			}

			r.reconcile(bucket, store, version, &sum)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	sum.write(r.stdout)

	if n := sum.failed(); n > 0 {
		return fmt.Errorf("%v of %v bucket(s) failed", n, len(buckets))
	}

	return nil
}

// reconcile runs the full pipeline for one bucket. Failures are recorded and
// reported for that bucket only - the rest of the batch is unaffected.
func (r *Reconcile) reconcile(bucket string, store lifecycleStore, version lifecycle.Version, sum *summary) {
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

	if verdict := lifecycle.Evaluate(current, r.days); verdict.Compliant {
		debugf("%v: policy satisfied by rule %q", bucket, verdict.Matched.ID)
	}

	proposed := lifecycle.Propose(current, r.days, version)

	change, err := lifecycle.Describe(current, proposed)
	if err != nil {
		errorf("%v: %v", bucket, err)
		sum.recordError(bucket, err)

		return
	}

	if err := r.report(bucket, change); err != nil {
		errorf("%v: %v", bucket, err)
		sum.recordError(bucket, err)

		return
	}

	if !change.Changed {
		infof("%v: compliant (abort rule within %v day(s))", bucket, r.days)
		sum.recordOK(bucket)

		return
	}

	if !r.apply {
		infof("%v: would add/update abort rule (%v day(s))", bucket, r.days)
		sum.recordWouldChange(bucket)

		return
	}

	if err := store.putLifecycle(bucket, proposed); err != nil {
		errorf("%v: %v", bucket, err)
		sum.recordError(bucket, err)

		return
	}

	if r.verify {
		if err := r.verifyApplied(bucket, store, proposed); err != nil {
			errorf("%v: %v", bucket, err)
			sum.recordError(bucket, err)

			return
		}
	}

	infof("%v: abort rule applied (%v day(s))", bucket, r.days)
	sum.recordChanged(bucket)
}

// verifyApplied re-reads the configuration after a replace and flags a
// mismatch. The backend offers no compare-and-swap, so a concurrent external
// modification between fetch and replace can only be detected after the
// fact.
func (r *Reconcile) verifyApplied(bucket string, store lifecycleStore, proposed lifecycle.RuleSet) error {
	applied, err := store.getLifecycle(bucket)
	if err != nil {
		return fmt.Errorf("verifying applied configuration: %w", err)
	}

	change, err := lifecycle.Describe(proposed, applied)
	if err != nil {
		return fmt.Errorf("verifying applied configuration: %w", err)
	}

	if change.Changed {
		return fmt.Errorf("applied configuration drifted from proposal (concurrent modification?)")
	}

	return nil
}

func (r *Reconcile) report(bucket string, change lifecycle.Change) error {
	var b bytes.Buffer

	if r.printRules {
		fmt.Fprintf(&b, "\n--- %v : CURRENT RULES ---\n%s\n", bucket, change.Current)
	}

	if r.printProposed {
		fmt.Fprintf(&b, "\n--- %v : PROPOSED RULES ---\n%s\n", bucket, change.Proposed)
	}

	if r.showDiff && change.Changed {
		fmt.Fprintf(&b, "\n--- %v : DIFF ---\n%v", bucket, change.UnifiedDiff())
	}

	if b.Len() > 0 {
		r.mu.Lock()
		fmt.Fprint(r.stdout, b.String())
		r.mu.Unlock()
	}

	if r.exportDir != "" {
		return exporter{dir: r.exportDir}.exportChange(bucket, change)
	}

	return nil
}
