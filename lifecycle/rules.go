package lifecycle

import (
	"time"
)

type Status string

const (
	StatusEnabled  Status = "Enabled"
	StatusDisabled Status = "Disabled"
)

// RuleSet is an ordered S3 lifecycle configuration. The order of the rules is
// significant and is preserved verbatim by everything in this package except
// for the single managed rule.
type RuleSet struct {
	Rules []Rule `json:"Rules"`
}

// Rule mirrors the S3 lifecycle rule document. Optional fields are pointers
// so that e.g. a legacy rule with Prefix set to the empty string is
// distinguishable from a rule without a Prefix at all. The reconciler only
// ever constructs the ID, Status, Prefix/Filter and
// AbortIncompleteMultipartUpload fields - the rest exist so that unrelated
// rules survive a fetch/propose/put round trip unmodified.
type Rule struct {
	ID                             string                          `json:"ID,omitempty"`
	Status                         Status                          `json:"Status,omitempty"`
	Prefix                         *string                         `json:"Prefix,omitempty"`
	Filter                         *Filter                         `json:"Filter,omitempty"`
	AbortIncompleteMultipartUpload *AbortIncompleteMultipartUpload `json:"AbortIncompleteMultipartUpload,omitempty"`
	Expiration                     *Expiration                     `json:"Expiration,omitempty"`
	NoncurrentVersionExpiration    *NoncurrentVersionExpiration    `json:"NoncurrentVersionExpiration,omitempty"`
	NoncurrentVersionTransitions   []NoncurrentVersionTransition   `json:"NoncurrentVersionTransitions,omitempty"`
	Transitions                    []Transition                    `json:"Transitions,omitempty"`
}

type Filter struct {
	And                   *AndOperator `json:"And,omitempty"`
	ObjectSizeGreaterThan *int64       `json:"ObjectSizeGreaterThan,omitempty"`
	ObjectSizeLessThan    *int64       `json:"ObjectSizeLessThan,omitempty"`
	Prefix                *string      `json:"Prefix,omitempty"`
	Tag                   *Tag         `json:"Tag,omitempty"`
}

type AndOperator struct {
	ObjectSizeGreaterThan *int64  `json:"ObjectSizeGreaterThan,omitempty"`
	ObjectSizeLessThan    *int64  `json:"ObjectSizeLessThan,omitempty"`
	Prefix                *string `json:"Prefix,omitempty"`
	Tags                  []Tag   `json:"Tags,omitempty"`
}

type Tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

type AbortIncompleteMultipartUpload struct {
	DaysAfterInitiation *int64 `json:"DaysAfterInitiation,omitempty"`
}

type Expiration struct {
	Date                      *time.Time `json:"Date,omitempty"`
	Days                      *int64     `json:"Days,omitempty"`
	ExpiredObjectDeleteMarker *bool      `json:"ExpiredObjectDeleteMarker,omitempty"`
}

type NoncurrentVersionExpiration struct {
	NewerNoncurrentVersions *int64 `json:"NewerNoncurrentVersions,omitempty"`
	NoncurrentDays          *int64 `json:"NoncurrentDays,omitempty"`
}

type NoncurrentVersionTransition struct {
	NewerNoncurrentVersions *int64  `json:"NewerNoncurrentVersions,omitempty"`
	NoncurrentDays          *int64  `json:"NoncurrentDays,omitempty"`
	StorageClass            *string `json:"StorageClass,omitempty"`
}

type Transition struct {
	Date         *time.Time `json:"Date,omitempty"`
	Days         *int64     `json:"Days,omitempty"`
	StorageClass *string    `json:"StorageClass,omitempty"`
}

// Clone returns a deep copy of the ruleset. The copy always has a non-nil
// rules slice so that it encodes as {"Rules": []} rather than {"Rules": null}.
func (rs RuleSet) Clone() RuleSet {
	rules := make([]Rule, 0, len(rs.Rules))
	for _, r := range rs.Rules {
		rules = append(rules, r.clone())
	}

	return RuleSet{Rules: rules}
}

func (r Rule) clone() Rule {
	c := r

	c.Prefix = cloneptr(r.Prefix)

	if r.Filter != nil {
		f := Filter{
			ObjectSizeGreaterThan: cloneptr(r.Filter.ObjectSizeGreaterThan),
			ObjectSizeLessThan:    cloneptr(r.Filter.ObjectSizeLessThan),
			Prefix:                cloneptr(r.Filter.Prefix),
			Tag:                   cloneptr(r.Filter.Tag),
		}
		if r.Filter.And != nil {
			f.And = &AndOperator{
				ObjectSizeGreaterThan: cloneptr(r.Filter.And.ObjectSizeGreaterThan),
				ObjectSizeLessThan:    cloneptr(r.Filter.And.ObjectSizeLessThan),
				Prefix:                cloneptr(r.Filter.And.Prefix),
				Tags:                  append([]Tag(nil), r.Filter.And.Tags...),
			}
		}
		c.Filter = &f
	}

	if r.AbortIncompleteMultipartUpload != nil {
		c.AbortIncompleteMultipartUpload = &AbortIncompleteMultipartUpload{
			DaysAfterInitiation: cloneptr(r.AbortIncompleteMultipartUpload.DaysAfterInitiation),
		}
	}

	if r.Expiration != nil {
		c.Expiration = &Expiration{
			Date:                      cloneptr(r.Expiration.Date),
			Days:                      cloneptr(r.Expiration.Days),
			ExpiredObjectDeleteMarker: cloneptr(r.Expiration.ExpiredObjectDeleteMarker),
		}
	}

	if r.NoncurrentVersionExpiration != nil {
		c.NoncurrentVersionExpiration = &NoncurrentVersionExpiration{
			NewerNoncurrentVersions: cloneptr(r.NoncurrentVersionExpiration.NewerNoncurrentVersions),
			NoncurrentDays:          cloneptr(r.NoncurrentVersionExpiration.NoncurrentDays),
		}
	}

	if r.NoncurrentVersionTransitions != nil {
		transitions := make([]NoncurrentVersionTransition, 0, len(r.NoncurrentVersionTransitions))
		for _, t := range r.NoncurrentVersionTransitions {
			transitions = append(transitions, NoncurrentVersionTransition{
				NewerNoncurrentVersions: cloneptr(t.NewerNoncurrentVersions),
				NoncurrentDays:          cloneptr(t.NoncurrentDays),
				StorageClass:            cloneptr(t.StorageClass),
			})
		}
		c.NoncurrentVersionTransitions = transitions
	}

	if r.Transitions != nil {
		transitions := make([]Transition, 0, len(r.Transitions))
		for _, t := range r.Transitions {
			transitions = append(transitions, Transition{
				Date:         cloneptr(t.Date),
				Days:         cloneptr(t.Days),
				StorageClass: cloneptr(t.StorageClass),
			})
		}
		c.Transitions = transitions
	}

	return c
}

func cloneptr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}
