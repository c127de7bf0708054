package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetRegionDescriptiveName(t *testing.T) {
	assert.Equal(t, "Asia Pacific (Sydney)", GetRegionDescriptiveName("ap-southeast-2"))
	assert.Equal(t, "", GetRegionDescriptiveName("xx-nowhere-9"))
	assert.True(t, IsKnownRegion("us-east-1"))
	assert.False(t, IsKnownRegion("default"))
}

func TestFormatEpochMillis(t *testing.T) {
	assert.Equal(t, "2024-01-01T00:00:00.000Z", FormatEpochMillis("1704067200000"))
	assert.Equal(t, "not-a-number", FormatEpochMillis("not-a-number"))
	assert.Equal(t, "2024-01-01T00:00:00.000Z", FormatEpochSeconds("1704067200"))
}

func TestFormatISOTime(t *testing.T) {
	assert.Equal(t, "N/A", FormatISOTime(nil))
	ts := time.Date(2025, 8, 18, 17, 56, 22, 454000000, time.UTC)
	assert.Equal(t, "2025-08-18T17:56:22.454Z", FormatISOTime(&ts))
}

func TestDecodePolicyDocument(t *testing.T) {
	encoded := "%7B%22Version%22%3A%222012-10-17%22%7D"
	assert.Equal(t, "{\n  \"Version\": \"2012-10-17\"\n}", DecodePolicyDocument(encoded))
	assert.Equal(t, "{oops", DecodePolicyDocument("{oops"))
}

func TestPointerHelpers(t *testing.T) {
	s := "x"
	empty := ""
	assert.Equal(t, "x", SafeDeref(&s))
	assert.Equal(t, "", SafeDeref(nil))
	assert.Equal(t, "N/A", DerefOr(&empty, "N/A"))
	n := int32(42)
	assert.Equal(t, "42", Int32String(&n))
	assert.Equal(t, "N/A", Int64String(nil))
}
