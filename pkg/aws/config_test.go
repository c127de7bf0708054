package aws

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younsl/awsinspector/internal/models"
)

const sampleConfig = `[default]
region = ap-southeast-2

[profile dev]
region = us-west-2
endpoint_url = http://localhost:4566

[profile no-region]
output = json

[sso-session corp]
sso_region = us-east-1
`

func writeConfig(t *testing.T, content string) *SharedConfig {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	c := NewSharedConfigFromFile(path)
	c.getenv = func(string) string { return "" }
	return c
}

func TestSharedConfigProfileIDs(t *testing.T) {
	c := writeConfig(t, sampleConfig)

	profiles, err := c.ProfileIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "dev", "no-region"}, profiles)
}

func TestSharedConfigMissingFile(t *testing.T) {
	c := NewSharedConfigFromFile(filepath.Join(t.TempDir(), "absent"))

	profiles, err := c.ProfileIDs()
	require.NoError(t, err)
	assert.Empty(t, profiles)

	_, ok := c.DefaultRegion("default")
	assert.False(t, ok)
}

func TestSharedConfigMalformed(t *testing.T) {
	c := writeConfig(t, "[default\nregion = us-east-1\n")

	_, err := c.ProfileIDs()
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUserConfiguration))
}

func TestSharedConfigDefaultRegion(t *testing.T) {
	c := writeConfig(t, sampleConfig)

	region, ok := c.DefaultRegion("default")
	assert.True(t, ok)
	assert.Equal(t, "ap-southeast-2", region)

	region, ok = c.DefaultRegion("dev")
	assert.True(t, ok)
	assert.Equal(t, "us-west-2", region)

	_, ok = c.DefaultRegion("no-region")
	assert.False(t, ok)

	c.getenv = func(key string) string {
		if key == "AWS_REGION" {
			return "eu-west-1"
		}
		return ""
	}
	region, ok = c.DefaultRegion("no-region")
	assert.True(t, ok)
	assert.Equal(t, "eu-west-1", region)
}

func TestSharedConfigClientConfig(t *testing.T) {
	c := writeConfig(t, sampleConfig)

	assert.Equal(t, "http://localhost:4566", c.ClientConfig("dev").EndpointOverride)
	assert.Empty(t, c.ClientConfig("default").EndpointOverride)
}
