package models

// ProfileInfo holds identity information about a configured AWS profile
type ProfileInfo struct {
	// Basic information
	ProfileID     string
	DefaultRegion string // Empty when the profile has no region configured

	// Identity, resolved through STS and IAM
	AccountID    string
	AccountAlias string // Empty when the account has no alias
	Err          error  // Set when the profile could not be accessed
}

// ClientConfig holds per-profile settings applied when building SDK clients
type ClientConfig struct {
	EndpointOverride string // Value of endpoint_url, empty for the public endpoints
}
