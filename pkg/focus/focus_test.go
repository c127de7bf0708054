package focus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younsl/awsinspector/internal/models"
)

func TestParseJSON(t *testing.T) {
	f, err := Parse([]byte(`{
	  "version": "1.0",
	  "profiles": [{
	    "id": "default",
	    "regions": [{
	      "id": "*",
	      "services": [{"id": "lambda", "resourcetypes": [{"id": "function", "arns": ["*"]}]}]
	    }]
	  }]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "1.0", f.Version)
	assert.Equal(t, "default", models.SoleProfileID(f.Profiles))
	assert.Equal(t, models.Wildcard, models.SoleRegionID(f.Profiles[0].Regions))
	assert.True(t, f.Profiles[0].Regions[0].Services[0].ResourceTypes[0].IsWildcardARNs())
}

func TestParseYAML(t *testing.T) {
	f, err := Parse([]byte(`
version: "1.0"
profiles:
  - id: staging
    regions:
      - id: default
        services:
          - id: sqs
            resourcetypes:
              - id: queue
                arns: []
`))
	require.NoError(t, err)
	rt := f.Profiles[0].Regions[0].Services[0].ResourceTypes[0]
	assert.Equal(t, "queue", rt.ID)
	assert.Empty(t, rt.ARNs)
	assert.Equal(t, models.DefaultRegion, f.Profiles[0].Regions[0].ID)
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	tests := map[string]string{
		"bad version":        `{"version": "2.0", "profiles": []}`,
		"missing version":    `{"profiles": []}`,
		"empty profile id":   `{"version": "1.0", "profiles": [{"id": "", "regions": []}]}`,
		"empty region id":    `{"version": "1.0", "profiles": [{"id": "default", "regions": [{"id": "", "services": []}]}]}`,
		"empty resource id":  `{"version": "1.0", "profiles": [{"id": "p", "regions": [{"id": "r", "services": [{"id": "s", "resourcetypes": [{"id": "", "arns": []}]}]}]}]}`,
		"malformed json":     `{"version": "1.0",`,
		"profiles not array": `{"version": "1.0", "profiles": {}}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "mine.focus.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("version: \"1.0\"\nprofiles:\n  - id: default\n    regions: []\n"), 0o600))

	f, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "default", f.Profiles[0].ID)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestMarshalRoundTripsThroughParse(t *testing.T) {
	f, err := LoadStandard(EverythingInDefaultProfile)
	require.NoError(t, err)

	data, err := Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"resourcetypes"`)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, f, again)
}
