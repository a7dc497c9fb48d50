/*
Package lifecycle implements the reconciliation core for S3 bucket lifecycle
configurations: given a bucket's current ruleset and a day threshold, it
decides whether a whole-bucket 'abort incomplete multipart upload' rule is
already in place and, if not, computes a replacement ruleset that adds or
updates the managed rule without disturbing any other rule.

All functions in this package are pure - rulesets are treated as values and
the caller's ruleset is never modified.
*/
package lifecycle
