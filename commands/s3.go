package commands

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/awsops/s3-mpu-lifecycle/lifecycle"
)

// errNoSuchLifecycleConfiguration has no constant in the SDK.
const errNoSuchLifecycleConfiguration = "NoSuchLifecycleConfiguration"

// lifecycleStore is the slice of the S3 API the reconciler needs. Probe
// checks that a bucket exists and is accessible, returning a non-empty skip
// reason when it should be passed over rather than treated as an error.
type lifecycleStore interface {
	probe(bucket string) (skip string, err error)
	getLifecycle(bucket string) (lifecycle.RuleSet, error)
	putLifecycle(bucket string, rs lifecycle.RuleSet) error
}

type s3Client struct {
	api s3iface.S3API
}

func newS3Client(opts awsOptions) (*s3Client, error) {
	cfg := aws.NewConfig().WithRegion(opts.region)

	if opts.credentials != "" {
		cfg = cfg.WithCredentials(credentials.NewSharedCredentials(opts.credentials, opts.profile))
	}

	s, err := session.NewSessionWithOptions(session.Options{
		Config:            *cfg,
		Profile:           opts.profile,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("creating AWS session: %w", err)
	}

	return &s3Client{api: s3.New(s)}, nil
}

func (c *s3Client) probe(bucket string) (string, error) {
	_, err := c.api.GetBucketLocation(&s3.GetBucketLocationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) {
			switch aerr.Code() {
			case s3.ErrCodeNoSuchBucket, "AccessDenied":
				return aerr.Code(), nil
			}
		}

		return "", fmt.Errorf("checking bucket %v: %w", bucket, err)
	}

	return "", nil
}

func (c *s3Client) getLifecycle(bucket string) (lifecycle.RuleSet, error) {
	debugf("fetching lifecycle configuration for %v", bucket)

	response, err := c.api.GetBucketLifecycleConfiguration(&s3.GetBucketLifecycleConfigurationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == errNoSuchLifecycleConfiguration {
			// no configuration at all is an ordinary state, not an error
			return lifecycle.RuleSet{}, nil
		}

		return lifecycle.RuleSet{}, fmt.Errorf("fetching lifecycle configuration for %v: %w", bucket, err)
	}

	return lifecycle.RuleSet{Rules: rulesFromSDK(response.Rules)}, nil
}

func (c *s3Client) putLifecycle(bucket string, rs lifecycle.RuleSet) error {
	debugf("replacing lifecycle configuration for %v (%d rules)", bucket, len(rs.Rules))

	_, err := c.api.PutBucketLifecycleConfiguration(&s3.PutBucketLifecycleConfigurationInput{
		Bucket: aws.String(bucket),
		LifecycleConfiguration: &s3.BucketLifecycleConfiguration{
			Rules: rulesToSDK(rs.Rules),
		},
	})
	if err != nil {
		return fmt.Errorf("replacing lifecycle configuration for %v: %w", bucket, err)
	}

	return nil
}

// rulesFromSDK and rulesToSDK translate between the SDK's lifecycle rule
// representation and the reconciler's model, field for field, so that rules
// this tool does not own round-trip through a replace without loss.

func rulesFromSDK(rules []*s3.LifecycleRule) []lifecycle.Rule {
	out := make([]lifecycle.Rule, 0, len(rules))

	for _, r := range rules {
		if r == nil {
			continue
		}

		rule := lifecycle.Rule{
			ID:     aws.StringValue(r.ID),
			Status: lifecycle.Status(aws.StringValue(r.Status)),
			Prefix: r.Prefix,
		}

		if r.Filter != nil {
			f := lifecycle.Filter{
				ObjectSizeGreaterThan: r.Filter.ObjectSizeGreaterThan,
				ObjectSizeLessThan:    r.Filter.ObjectSizeLessThan,
				Prefix:                r.Filter.Prefix,
				Tag:                   tagFromSDK(r.Filter.Tag),
			}
			if r.Filter.And != nil {
				and := lifecycle.AndOperator{
					ObjectSizeGreaterThan: r.Filter.And.ObjectSizeGreaterThan,
					ObjectSizeLessThan:    r.Filter.And.ObjectSizeLessThan,
					Prefix:                r.Filter.And.Prefix,
				}
				for _, t := range r.Filter.And.Tags {
					if tag := tagFromSDK(t); tag != nil {
						and.Tags = append(and.Tags, *tag)
					}
				}
				f.And = &and
			}
			rule.Filter = &f
		}

		if r.AbortIncompleteMultipartUpload != nil {
			rule.AbortIncompleteMultipartUpload = &lifecycle.AbortIncompleteMultipartUpload{
				DaysAfterInitiation: r.AbortIncompleteMultipartUpload.DaysAfterInitiation,
			}
		}

		if r.Expiration != nil {
			rule.Expiration = &lifecycle.Expiration{
				Date:                      r.Expiration.Date,
				Days:                      r.Expiration.Days,
				ExpiredObjectDeleteMarker: r.Expiration.ExpiredObjectDeleteMarker,
			}
		}

		if r.NoncurrentVersionExpiration != nil {
			rule.NoncurrentVersionExpiration = &lifecycle.NoncurrentVersionExpiration{
				NewerNoncurrentVersions: r.NoncurrentVersionExpiration.NewerNoncurrentVersions,
				NoncurrentDays:          r.NoncurrentVersionExpiration.NoncurrentDays,
			}
		}

		for _, t := range r.NoncurrentVersionTransitions {
			if t == nil {
				continue
			}
			rule.NoncurrentVersionTransitions = append(rule.NoncurrentVersionTransitions, lifecycle.NoncurrentVersionTransition{
				NewerNoncurrentVersions: t.NewerNoncurrentVersions,
				NoncurrentDays:          t.NoncurrentDays,
				StorageClass:            t.StorageClass,
			})
		}

		for _, t := range r.Transitions {
			if t == nil {
				continue
			}
			rule.Transitions = append(rule.Transitions, lifecycle.Transition{
				Date:         t.Date,
				Days:         t.Days,
				StorageClass: t.StorageClass,
			})
		}

		out = append(out, rule)
	}

	return out
}

func rulesToSDK(rules []lifecycle.Rule) []*s3.LifecycleRule {
	out := make([]*s3.LifecycleRule, 0, len(rules))

	for _, r := range rules {
		rule := s3.LifecycleRule{
			Prefix: r.Prefix,
		}

		if r.ID != "" {
			rule.ID = aws.String(r.ID)
		}

		if r.Status != "" {
			rule.Status = aws.String(string(r.Status))
		}

		if r.Filter != nil {
			f := s3.LifecycleRuleFilter{
				ObjectSizeGreaterThan: r.Filter.ObjectSizeGreaterThan,
				ObjectSizeLessThan:    r.Filter.ObjectSizeLessThan,
				Prefix:                r.Filter.Prefix,
				Tag:                   tagToSDK(r.Filter.Tag),
			}
			if r.Filter.And != nil {
				and := s3.LifecycleRuleAndOperator{
					ObjectSizeGreaterThan: r.Filter.And.ObjectSizeGreaterThan,
					ObjectSizeLessThan:    r.Filter.And.ObjectSizeLessThan,
					Prefix:                r.Filter.And.Prefix,
				}
				for _, t := range r.Filter.And.Tags {
					and.Tags = append(and.Tags, tagToSDK(&t))
				}
				f.And = &and
			}
			rule.Filter = &f
		}

		if r.AbortIncompleteMultipartUpload != nil {
			rule.AbortIncompleteMultipartUpload = &s3.AbortIncompleteMultipartUpload{
				DaysAfterInitiation: r.AbortIncompleteMultipartUpload.DaysAfterInitiation,
			}
		}

		if r.Expiration != nil {
			rule.Expiration = &s3.LifecycleExpiration{
				Date:                      r.Expiration.Date,
				Days:                      r.Expiration.Days,
				ExpiredObjectDeleteMarker: r.Expiration.ExpiredObjectDeleteMarker,
			}
		}

		if r.NoncurrentVersionExpiration != nil {
			rule.NoncurrentVersionExpiration = &s3.NoncurrentVersionExpiration{
				NewerNoncurrentVersions: r.NoncurrentVersionExpiration.NewerNoncurrentVersions,
				NoncurrentDays:          r.NoncurrentVersionExpiration.NoncurrentDays,
			}
		}

		for _, t := range r.NoncurrentVersionTransitions {
			rule.NoncurrentVersionTransitions = append(rule.NoncurrentVersionTransitions, &s3.NoncurrentVersionTransition{
				NewerNoncurrentVersions: t.NewerNoncurrentVersions,
				NoncurrentDays:          t.NoncurrentDays,
				StorageClass:            t.StorageClass,
			})
		}

		for _, t := range r.Transitions {
			rule.Transitions = append(rule.Transitions, &s3.Transition{
				Date:         t.Date,
				Days:         t.Days,
				StorageClass: t.StorageClass,
			})
		}

		out = append(out, &rule)
	}

	return out
}

func tagFromSDK(t *s3.Tag) *lifecycle.Tag {
	if t == nil {
		return nil
	}

	return &lifecycle.Tag{
		Key:   aws.StringValue(t.Key),
		Value: aws.StringValue(t.Value),
	}
}

func tagToSDK(t *lifecycle.Tag) *s3.Tag {
	if t == nil {
		return nil
	}

	return &s3.Tag{
		Key:   aws.String(t.Key),
		Value: aws.String(t.Value),
	}
}
