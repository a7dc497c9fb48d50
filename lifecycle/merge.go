package lifecycle

import (
	"fmt"
)

// Version selects the style used for the managed rule's whole-bucket scope.
// v1 is the legacy form (top-level Prefix set to the empty string), v2 the
// Filter form (an empty Filter). Auto detects the style from the existing
// rules so that a mixed-style configuration is never produced.
type Version string

const (
	VersionAuto Version = "auto"
	VersionV1   Version = "v1"
	VersionV2   Version = "v2"
)

func ParseVersion(s string) (Version, error) {
	switch Version(s) {
	case VersionAuto, VersionV1, VersionV2:
		return Version(s), nil
	}

	return "", fmt.Errorf("invalid lifecycle version %q (expected one of: auto, v1, v2)", s)
}

// DetectVersion resolves 'auto' against an existing ruleset: any rule using a
// Filter marks the configuration as v2, otherwise any rule using the legacy
// Prefix marks it as v1. An empty ruleset defaults to v2.
func DetectVersion(rs RuleSet) Version {
	for _, r := range rs.Rules {
		if r.Filter != nil {
			return VersionV2
		}

		if r.Prefix != nil {
			return VersionV1
		}
	}

	return VersionV2
}

// RuleID derives the managed rule's well-known ID from the day threshold.
// The derivation is deterministic so that repeated runs with the same
// threshold converge on the same rule.
func RuleID(days int) string {
	return fmt.Sprintf("abort-multipart-after-%d-days", days)
}

// ManagedRule constructs the whole-bucket abort rule for the given threshold.
// version must be resolved (v1 or v2).
func ManagedRule(days int, version Version) Rule {
	d := int64(days)

	r := Rule{
		ID:                             RuleID(days),
		Status:                         StatusEnabled,
		AbortIncompleteMultipartUpload: &AbortIncompleteMultipartUpload{DaysAfterInitiation: &d},
	}

	if version == VersionV1 {
		prefix := ""
		r.Prefix = &prefix
	} else {
		r.Filter = &Filter{}
	}

	return r
}

// Propose computes the ruleset that brings a bucket into compliance with the
// maxDays threshold. A compliant input is returned unchanged (as an
// equal-value copy), so repeated runs are a no-op. Otherwise the managed rule
// either replaces an existing rule with the same derived ID at its current
// position, or is appended at the end. Every other rule is carried through
// unmodified and in its original order: the storage backend replaces the
// whole configuration on write, so dropping or reordering an unrelated rule
// would silently change bucket behaviour.
func Propose(rs RuleSet, maxDays int, version Version) RuleSet {
	proposed := rs.Clone()

	if Evaluate(rs, maxDays).Compliant {
		return proposed
	}

	if version == VersionAuto {
		version = DetectVersion(rs)
	}

	managed := ManagedRule(maxDays, version)

	for i, r := range proposed.Rules {
		if r.ID == managed.ID {
			proposed.Rules[i] = managed

			return proposed
		}
	}

	proposed.Rules = append(proposed.Rules, managed)

	return proposed
}
