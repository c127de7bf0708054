package formatter

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/pkg/focus"
	"github.com/younsl/awsinspector/pkg/tree"
)

func init() {
	color.NoColor = true
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 5, StringWidth("hello"))
	assert.Equal(t, 4, StringWidth("한글"))
	assert.Equal(t, "ab   ", PadString("ab", 5))
	assert.Equal(t, "한글 ", PadString("한글", 5))
	assert.Equal(t, "toolong", PadString("toolong", 3))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "...", truncateString("abcdef", 2))
}

func TestPrintTree(t *testing.T) {
	rows := []TreeRow{
		{Depth: 0, Node: &tree.Node{Kind: tree.KindProfile, Label: "Profile: default", Description: "(123456789012 - dev)"}},
		{Depth: 1, Node: &tree.Node{Kind: tree.KindRegion, Label: "us-east-1", Description: "US East (N. Virginia)"}},
		{Depth: 2, Node: &tree.Node{Kind: tree.KindService, Label: "SQS"}},
		{Depth: 3, Node: &tree.Node{Kind: tree.KindResourceType, Label: "Queues"}},
		{Depth: 4, Node: &tree.Node{Kind: tree.KindArn, Label: "jobs", ARN: "arn:aws:sqs:us-east-1:123456789012:jobs"}},
		{Depth: 0, Node: &tree.Node{Kind: tree.KindError, Label: "Error: Invalid Profile: broken. ExpiredToken"}},
	}

	var buf bytes.Buffer
	PrintTree(&buf, rows, true)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)

	descCol := strings.Index(lines[0], "(1234")
	assert.Equal(t, descCol, strings.Index(lines[1], "US East"))
	assert.Equal(t, descCol, strings.Index(lines[4], "arn:aws:sqs"))
	assert.Equal(t, "    SQS", lines[2])
	assert.True(t, strings.HasPrefix(lines[4], "        jobs"))

	buf.Reset()
	PrintTree(&buf, rows, false)
	assert.NotContains(t, buf.String(), "arn:aws:sqs")

	buf.Reset()
	PrintTree(&buf, nil, false)
	assert.Equal(t, "Nothing in focus.\n", buf.String())
}

func TestPrintDetails(t *testing.T) {
	var buf bytes.Buffer
	PrintDetails(&buf, []models.ResourceField{
		{Field: "ARN", Value: "arn:aws:sqs:us-east-1:123456789012:jobs", Type: models.FieldARN},
		{Field: "Approximate Number of Messages", Value: "1234567", Type: models.FieldNumber},
		{Field: "Log Group", Value: "/aws/lambda/fn", Type: models.FieldLogGroup},
	})
	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "1,234,567")
	assert.Contains(t, out, "/aws/lambda/fn (log group)")
	assert.Contains(t, out, "arn:aws:sqs:us-east-1:123456789012:jobs")
}

func TestPrintFocus(t *testing.T) {
	f, err := focus.LoadStandard(focus.EverythingInDefaultRegion)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PrintFocus(&buf, f))
	again, err := focus.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, f, again)
}

func TestPrintLists(t *testing.T) {
	var buf bytes.Buffer
	PrintStandardFocuses(&buf, focus.StandardFocuses())
	assert.Contains(t, buf.String(), "everything-in-all-profiles")
	assert.Contains(t, buf.String(), "Everything in all Profiles")

	buf.Reset()
	PrintProfiles(&buf, []models.ProfileInfo{
		{ProfileID: "default", DefaultRegion: "us-east-1", AccountID: "123456789012", AccountAlias: "dev"},
		{ProfileID: "broken", Err: errors.New("ExpiredToken")},
	})
	out := buf.String()
	assert.Contains(t, out, "123456789012")
	assert.Contains(t, out, "ExpiredToken")
	assert.Contains(t, out, "OK")

	buf.Reset()
	PrintTimestamp(&buf, time.Date(2025, 4, 15, 9, 30, 0, 0, time.UTC), 1500*time.Millisecond)
	assert.Equal(t, "Resolved at 2025-04-15 09:30:00 (took 1.50s)\n", buf.String())
}
