package lifecycle

// Verdict is the result of evaluating a ruleset against a day threshold.
// Matched is a copy of the first rule that satisfied the policy, when there
// is one.
type Verdict struct {
	Compliant bool
	Matched   *Rule
}

// Evaluate scans the ruleset in order and reports whether any rule already
// guarantees that incomplete multipart uploads are aborted within maxDays. A
// rule qualifies iff it is Enabled, applies to the whole bucket, and carries
// an abort-incomplete-multipart-upload action of at most maxDays. Malformed
// or partial rules never qualify - they are not an error.
func Evaluate(rs RuleSet, maxDays int) Verdict {
	for _, r := range rs.Rules {
		if qualifies(r, maxDays) {
			matched := r.clone()

			return Verdict{Compliant: true, Matched: &matched}
		}
	}

	return Verdict{}
}

func qualifies(r Rule, maxDays int) bool {
	if r.Status != StatusEnabled {
		return false
	}

	if r.AbortIncompleteMultipartUpload == nil || r.AbortIncompleteMultipartUpload.DaysAfterInitiation == nil {
		return false
	}

	if *r.AbortIncompleteMultipartUpload.DaysAfterInitiation > int64(maxDays) {
		return false
	}

	return appliesToWholeBucket(r)
}

// appliesToWholeBucket reports whether a rule is unscoped. A scoped rule
// (prefix, tag or object-size restriction) leaves some incomplete uploads
// unmanaged and therefore never counts as compliance evidence. A non-empty
// legacy top-level Prefix is scoped regardless of Filter; an empty legacy
// Prefix is unscoped. Note that a Filter carrying an explicit empty Prefix is
// treated as scoped - only the legacy top-level Prefix form counts as
// unscoped when empty.
func appliesToWholeBucket(r Rule) bool {
	if r.Prefix != nil {
		return *r.Prefix == ""
	}

	if r.Filter == nil {
		return true
	}

	f := *r.Filter
	if f.And == nil && f.Prefix == nil && f.Tag == nil && f.ObjectSizeGreaterThan == nil && f.ObjectSizeLessThan == nil {
		return true
	}

	if f.And != nil && f.And.Prefix == nil && len(f.And.Tags) == 0 && f.And.ObjectSizeGreaterThan == nil && f.And.ObjectSizeLessThan == nil {
		return true
	}

	return false
}
