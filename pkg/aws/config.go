package aws

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/younsl/awsinspector/internal/models"
	"gopkg.in/ini.v1"
)

const (
	defaultProfile = "default"
	profilePrefix  = "profile "
)

// SharedConfig reads profiles and their settings from the AWS shared config
// file (~/.aws/config, or the file named by AWS_CONFIG_FILE)
type SharedConfig struct {
	path   string
	getenv func(string) string
}

// NewSharedConfig returns a SharedConfig for the user's config file
func NewSharedConfig() *SharedConfig {
	path := os.Getenv("AWS_CONFIG_FILE")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		path = filepath.Join(home, ".aws", "config")
	}
	return NewSharedConfigFromFile(path)
}

// NewSharedConfigFromFile returns a SharedConfig reading the given file
func NewSharedConfigFromFile(path string) *SharedConfig {
	return &SharedConfig{path: path, getenv: os.Getenv}
}

// Path returns the config file location
func (c *SharedConfig) Path() string {
	return c.path
}

// load parses the config file. A missing file yields (nil, nil).
func (c *SharedConfig) load() (*ini.File, error) {
	if _, err := os.Stat(c.path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	f, err := ini.Load(c.path)
	if err != nil {
		return nil, &models.UserConfigurationError{Path: c.path, Err: err}
	}
	return f, nil
}

// ProfileIDs returns the profiles found in the config file in file order.
// The [default] section is reported as "default". A missing file yields no
// profiles; an unparsable one yields a *models.UserConfigurationError.
func (c *SharedConfig) ProfileIDs() ([]string, error) {
	f, err := c.load()
	if err != nil || f == nil {
		return nil, err
	}

	var profiles []string
	for _, name := range f.SectionStrings() {
		switch {
		case name == defaultProfile:
			profiles = append(profiles, defaultProfile)
		case strings.HasPrefix(name, profilePrefix):
			profiles = append(profiles, strings.TrimSpace(strings.TrimPrefix(name, profilePrefix)))
		}
	}
	return profiles, nil
}

// DefaultRegion returns the region configured for profile. AWS_REGION takes
// precedence over the file.
func (c *SharedConfig) DefaultRegion(profile string) (string, bool) {
	if region := c.getenv("AWS_REGION"); region != "" {
		return region, true
	}
	region := c.value(profile, "region")
	return region, region != ""
}

// ClientConfig returns the SDK settings for profile
func (c *SharedConfig) ClientConfig(profile string) models.ClientConfig {
	endpoint := c.getenv("AWS_ENDPOINT_URL")
	if endpoint == "" {
		endpoint = c.value(profile, "endpoint_url")
	}
	return models.ClientConfig{EndpointOverride: endpoint}
}

func (c *SharedConfig) value(profile, key string) string {
	f, err := c.load()
	if err != nil || f == nil {
		return ""
	}
	section, err := f.GetSection(sectionName(profile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(section.Key(key).String())
}

func sectionName(profile string) string {
	if profile == defaultProfile {
		return defaultProfile
	}
	return fmt.Sprintf("%s%s", profilePrefix, profile)
}
