// Package provider maps AWS services onto the resource tree: which resource
// types each service exposes, how to list and describe them, and how
// CloudFormation resources translate into ARNs.
package provider

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/pkg/arn"
	"github.com/younsl/awsinspector/pkg/aws"
)

// Provider is the per-service capability set
type Provider interface {
	ID() string
	DisplayName() string
	IconPath() string

	// ResourceTypeIDs returns the service's resource types in display order
	ResourceTypeIDs() []string
	ResourceTypeNames(resourceType string) (singular, plural string, err error)

	ListResourceArns(ctx context.Context, profile, region, resourceType string) ([]string, error)
	DescribeResource(ctx context.Context, profile string, resource arn.ARN) ([]models.ResourceField, error)

	// ArnForCloudFormationResource computes the resource type id and the
	// resource part of the ARN for a stack resource
	ArnForCloudFormationResource(cfnType string, res models.StackResource) (resourceType, resourceName string, err error)
}

// Config is shared by every provider of a registry
type Config struct {
	IconRoot string
	Clients  aws.ClientFactory
	Logger   *slog.Logger
}

type typeNames struct {
	singular string
	plural   string
}

// base holds the static description of a service
type base struct {
	id     string
	name   string
	types  []string
	names  map[string]typeNames
	cfg    Config
	logger *slog.Logger
}

func newBase(cfg Config, id, name string, types ...[3]string) base {
	b := base{
		id:    id,
		name:  name,
		names: make(map[string]typeNames, len(types)),
		cfg:   cfg,
	}
	for _, t := range types {
		b.types = append(b.types, t[0])
		b.names[t[0]] = typeNames{singular: t[1], plural: t[2]}
	}
	b.logger = cfg.Logger
	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.logger = b.logger.With("service", id)
	return b
}

func (b *base) ID() string          { return b.id }
func (b *base) DisplayName() string { return b.name }

func (b *base) IconPath() string {
	return filepath.Join(b.cfg.IconRoot, "services", b.id+".svg")
}

func (b *base) ResourceTypeIDs() []string {
	return append([]string(nil), b.types...)
}

func (b *base) ResourceTypeNames(resourceType string) (string, string, error) {
	n, ok := b.names[resourceType]
	if !ok {
		return "", "", b.unknownType(resourceType)
	}
	return n.singular, n.plural, nil
}

func (b *base) ArnForCloudFormationResource(cfnType string, _ models.StackResource) (string, string, error) {
	return "", "", &models.UnsupportedResourceError{ResourceType: cfnType}
}

func (b *base) unknownType(resourceType string) error {
	return &models.UnknownResourceTypeError{ServiceID: b.id, ResourceType: resourceType}
}

// header returns the leading "Resource Type" row of a description
func header(singular string) models.ResourceField {
	return models.ResourceField{Field: "Resource Type", Value: singular, Type: models.FieldName}
}

func field(name, value string, t models.FieldType) models.ResourceField {
	return models.ResourceField{Field: name, Value: value, Type: t}
}

// lastSegment returns the text after the final sep, or s itself
func lastSegment(s string, sep byte) string {
	return s[strings.LastIndexByte(s, sep)+1:]
}
