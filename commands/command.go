package commands

import (
	"github.com/spf13/cobra"

	"github.com/awsops/s3-mpu-lifecycle/log"
)

const APP = "s3-mpu-lifecycle"

const VERSION = "v0.1.0"

// awsOptions are the AWS plumbing flags shared by every command that talks
// to S3.
type awsOptions struct {
	credentials string
	profile     string
	region      string
}

func (o *awsOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.credentials, "credentials", o.credentials, "File path for the AWS shared credentials (defaults to the SDK credential chain)")
	cmd.Flags().StringVar(&o.profile, "profile", o.profile, "AWS credentials profile (defaults to 'default')")
	cmd.Flags().StringVar(&o.region, "region", o.region, "AWS region for S3")
}

// bucketOptions select the buckets a command operates on. Exactly one of the
// explicit list or the file must be given; the result is deduplicated keeping
// first-seen order.
type bucketOptions struct {
	buckets    []string
	bucketFile string
}

func (o *bucketOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&o.buckets, "buckets", o.buckets, "Bucket names, comma-separated or repeated")
	cmd.Flags().StringVar(&o.bucketFile, "bucket-file", o.bucketFile, "File with one bucket name per line ('#' comments and blank lines ignored)")
}

func debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

func infof(format string, args ...any) {
	log.Infof(format, args...)
}

func warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

func errorf(format string, args ...any) {
	log.Errorf(format, args...)
}
