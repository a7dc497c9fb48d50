package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awsops/s3-mpu-lifecycle/lifecycle"
)

type fakeS3API struct {
	s3iface.S3API

	locationErr error
	getOutput   *s3.GetBucketLifecycleConfigurationOutput
	getErr      error
	putInput    *s3.PutBucketLifecycleConfigurationInput
	putErr      error
}

func (f *fakeS3API) GetBucketLocation(*s3.GetBucketLocationInput) (*s3.GetBucketLocationOutput, error) {
	if f.locationErr != nil {
		return nil, f.locationErr
	}

	return &s3.GetBucketLocationOutput{}, nil
}

func (f *fakeS3API) GetBucketLifecycleConfiguration(*s3.GetBucketLifecycleConfigurationInput) (*s3.GetBucketLifecycleConfigurationOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	return f.getOutput, nil
}

func (f *fakeS3API) PutBucketLifecycleConfiguration(in *s3.PutBucketLifecycleConfigurationInput) (*s3.PutBucketLifecycleConfigurationOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}

	f.putInput = in

	return &s3.PutBucketLifecycleConfigurationOutput{}, nil
}

func TestProbe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		skip    string
		wantErr bool
	}{
		{name: "exists", err: nil, skip: ""},
		{name: "no such bucket", err: awserr.New("NoSuchBucket", "no such bucket", nil), skip: "NoSuchBucket"},
		{name: "access denied", err: awserr.New("AccessDenied", "access denied", nil), skip: "AccessDenied"},
		{name: "other aws error", err: awserr.New("SlowDown", "reduce request rate", nil), wantErr: true},
		{name: "transport error", err: errors.New("connection reset"), wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := s3Client{api: &fakeS3API{locationErr: tt.err}}

			skip, err := client.probe("b")

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.skip, skip)
		})
	}
}

func TestGetLifecycleMapsMissingConfigurationToEmptyRuleset(t *testing.T) {
	t.Parallel()

	client := s3Client{api: &fakeS3API{
		getErr: awserr.New("NoSuchLifecycleConfiguration", "the lifecycle configuration does not exist", nil),
	}}

	rs, err := client.getLifecycle("b")

	require.NoError(t, err)
	assert.Empty(t, rs.Rules)
}

func TestGetLifecycleSurfacesOtherErrors(t *testing.T) {
	t.Parallel()

	client := s3Client{api: &fakeS3API{
		getErr: awserr.New("AccessDenied", "access denied", nil),
	}}

	_, err := client.getLifecycle("b")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "b")
}

func TestPutLifecycleSendsConvertedRules(t *testing.T) {
	t.Parallel()

	api := fakeS3API{}
	client := s3Client{api: &api}

	proposed := lifecycle.Propose(lifecycle.RuleSet{}, 7, lifecycle.VersionAuto)

	require.NoError(t, client.putLifecycle("b", proposed))
	require.NotNil(t, api.putInput)
	assert.Equal(t, "b", aws.StringValue(api.putInput.Bucket))

	rules := api.putInput.LifecycleConfiguration.Rules
	require.Len(t, rules, 1)
	assert.Equal(t, "abort-multipart-after-7-days", aws.StringValue(rules[0].ID))
	assert.Equal(t, "Enabled", aws.StringValue(rules[0].Status))
	require.NotNil(t, rules[0].Filter)
	require.NotNil(t, rules[0].AbortIncompleteMultipartUpload)
	assert.EqualValues(t, 7, aws.Int64Value(rules[0].AbortIncompleteMultipartUpload.DaysAfterInitiation))
}

// A rule using every field this tool does not own must survive the SDK round
// trip untouched - the backend replaces the whole configuration on write.
func TestSDKRoundTripPreservesUnrelatedFields(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	sdk := []*s3.LifecycleRule{
		{
			ID:     aws.String("archive"),
			Status: aws.String("Enabled"),
			Filter: &s3.LifecycleRuleFilter{
				And: &s3.LifecycleRuleAndOperator{
					Prefix:                aws.String("archive/"),
					ObjectSizeGreaterThan: aws.Int64(1024),
					Tags: []*s3.Tag{
						{Key: aws.String("tier"), Value: aws.String("cold")},
					},
				},
			},
			Expiration: &s3.LifecycleExpiration{
				Date:                      aws.Time(date),
				ExpiredObjectDeleteMarker: aws.Bool(true),
			},
			NoncurrentVersionExpiration: &s3.NoncurrentVersionExpiration{
				NoncurrentDays:          aws.Int64(30),
				NewerNoncurrentVersions: aws.Int64(2),
			},
			NoncurrentVersionTransitions: []*s3.NoncurrentVersionTransition{
				{NoncurrentDays: aws.Int64(7), StorageClass: aws.String("GLACIER")},
			},
			Transitions: []*s3.Transition{
				{Days: aws.Int64(90), StorageClass: aws.String("DEEP_ARCHIVE")},
			},
		},
		{
			Status: aws.String("Disabled"),
			Prefix: aws.String("legacy/"),
		},
	}

	roundTripped := rulesToSDK(rulesFromSDK(sdk))

	assert.Equal(t, sdk, roundTripped)
}
