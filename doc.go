/*
Package s3mpulifecycle reconciles the lifecycle configuration of a set of S3
buckets against a single required policy: an enabled, whole-bucket rule that
aborts incomplete multipart uploads after at most N days.

s3-mpu-lifecycle can be used from the command line but is really intended to
be run from a cron job across an account's buckets. It supports the following
commands:

  - reconcile, to check each bucket and propose (or apply) the managed abort rule
  - show, to display each bucket's current lifecycle configuration

Dry-run is the default: without --apply no bucket is ever modified. Rules the
tool does not own are always carried through a replace unmodified and in
their original order.
*/
package s3mpulifecycle
