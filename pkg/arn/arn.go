// Package arn parses AWS Resource Names into their fields.
package arn

import (
	"regexp"
	"strings"

	"github.com/younsl/awsinspector/internal/models"
)

var arnPattern = regexp.MustCompile(`^arn:(aws[\-a-z]*):([a-zA-Z0-9\-.]+):([a-zA-Z0-9\-.]*):([0-9]{12})?(:|/)(.*)$`)

// ARN is a parsed AWS Resource Name
type ARN struct {
	raw string

	Partition  string
	Service    string
	Region     string
	AccountID  string // 12 digits or empty
	ResourceID string // Everything after the account id separator

	// ResourceType is empty when ResourceID has no "/" or ":" separator
	ResourceType string
	ResourceName string
}

// Parse parses s into an ARN
func Parse(s string) (ARN, error) {
	m := arnPattern.FindStringSubmatch(s)
	if m == nil {
		return ARN{}, &models.InvalidArnError{ARN: s}
	}

	a := ARN{
		raw:        s,
		Partition:  m[1],
		Service:    m[2],
		Region:     m[3],
		AccountID:  m[4],
		ResourceID: m[6],
	}

	if i := strings.IndexAny(a.ResourceID, "/:"); i >= 0 {
		a.ResourceType = a.ResourceID[:i]
		a.ResourceName = a.ResourceID[i+1:]
	} else {
		a.ResourceName = a.ResourceID
	}
	return a, nil
}

// MustParse is like Parse but panics on malformed input
func MustParse(s string) ARN {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the original ARN text
func (a ARN) String() string { return a.raw }

// HasResourceType reports whether the resource id carried a type prefix
func (a ARN) HasResourceType() bool {
	return len(a.ResourceID) > len(a.ResourceName)
}

// Build assembles an ARN string from its parts
func Build(partition, service, region, accountID, resource string) string {
	return "arn:" + partition + ":" + service + ":" + region + ":" + accountID + ":" + resource
}
