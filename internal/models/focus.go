package models

// Sentinel ids used inside a Focus document
const (
	Wildcard      = "*"       // enumerate dynamically
	DefaultRegion = "default" // region level only: the profile's configured region

	FocusVersion = "1.0"
)

// Focus describes which profiles, regions, services, resource types and
// resources are in scope for the resource tree
type Focus struct {
	Version  string         `json:"version" yaml:"version" validate:"required,eq=1.0"`
	Profiles []ProfileFocus `json:"profiles" yaml:"profiles" validate:"dive"`
}

// ProfileFocus is one AWS profile entry of a Focus
type ProfileFocus struct {
	ID      string        `json:"id" yaml:"id" validate:"required"`
	Regions []RegionFocus `json:"regions" yaml:"regions" validate:"dive"`
}

// RegionFocus is one region entry below a profile
type RegionFocus struct {
	ID       string         `json:"id" yaml:"id" validate:"required"`
	Services []ServiceFocus `json:"services" yaml:"services" validate:"dive"`
}

// ServiceFocus is one AWS service entry below a region
type ServiceFocus struct {
	ID            string              `json:"id" yaml:"id" validate:"required"`
	ResourceTypes []ResourceTypeFocus `json:"resourcetypes" yaml:"resourcetypes" validate:"dive"`
}

// ResourceTypeFocus lists the ARNs of one resource type. ["*"] means list
// live resources, [] means no resources.
type ResourceTypeFocus struct {
	ID   string   `json:"id" yaml:"id" validate:"required"`
	ARNs []string `json:"arns" yaml:"arns"`
}

// IsWildcardARNs reports whether the ARN list asks for a live listing
func (r ResourceTypeFocus) IsWildcardARNs() bool {
	return len(r.ARNs) == 1 && r.ARNs[0] == Wildcard
}

// SoleProfileID returns the id of the only profile entry, or "" when the
// list does not have exactly one element
func SoleProfileID(profiles []ProfileFocus) string {
	if len(profiles) != 1 {
		return ""
	}
	return profiles[0].ID
}

// SoleRegionID returns the id of the only region entry, or ""
func SoleRegionID(regions []RegionFocus) string {
	if len(regions) != 1 {
		return ""
	}
	return regions[0].ID
}

// SoleServiceID returns the id of the only service entry, or ""
func SoleServiceID(services []ServiceFocus) string {
	if len(services) != 1 {
		return ""
	}
	return services[0].ID
}
