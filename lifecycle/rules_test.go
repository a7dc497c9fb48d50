package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awsops/s3-mpu-lifecycle/lifecycle"
)

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	size := int64(1024)

	rs := lifecycle.RuleSet{
		Rules: []lifecycle.Rule{
			{
				ID:     "archive",
				Status: lifecycle.StatusEnabled,
				Filter: &lifecycle.Filter{
					And: &lifecycle.AndOperator{
						Prefix:                strptr("archive/"),
						ObjectSizeGreaterThan: &size,
						Tags:                  []lifecycle.Tag{{Key: "tier", Value: "cold"}},
					},
				},
				AbortIncompleteMultipartUpload: days(5),
			},
		},
	}

	clone := rs.Clone()
	require.Equal(t, rs.Rules, clone.Rules)

	*clone.Rules[0].Filter.And.Prefix = "mutated/"
	*clone.Rules[0].AbortIncompleteMultipartUpload.DaysAfterInitiation = 99
	clone.Rules[0].Filter.And.Tags[0].Key = "mutated"

	assert.Equal(t, "archive/", *rs.Rules[0].Filter.And.Prefix)
	assert.EqualValues(t, 5, *rs.Rules[0].AbortIncompleteMultipartUpload.DaysAfterInitiation)
	assert.Equal(t, "tier", rs.Rules[0].Filter.And.Tags[0].Key)
}

func TestCloneNormalisesNilRules(t *testing.T) {
	t.Parallel()

	clone := lifecycle.RuleSet{}.Clone()

	assert.NotNil(t, clone.Rules)
	assert.Empty(t, clone.Rules)
}
