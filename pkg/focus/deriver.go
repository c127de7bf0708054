package focus

import (
	"context"
	"fmt"
	"strings"

	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/pkg/arn"
	"github.com/younsl/awsinspector/pkg/provider"
)

// StackResourceLister lists the resources of one CloudFormation stack
type StackResourceLister interface {
	ListStackResources(ctx context.Context, profile, region, stackID string) ([]models.StackResource, error)
}

// StackResourceListerFunc adapts a function to StackResourceLister
type StackResourceListerFunc func(ctx context.Context, profile, region, stackID string) ([]models.StackResource, error)

func (f StackResourceListerFunc) ListStackResources(ctx context.Context, profile, region, stackID string) ([]models.StackResource, error) {
	return f(ctx, profile, region, stackID)
}

// CloudFormation service segments that differ from the provider id
var serviceAliases = map[string]string{
	"stepfunctions": "states",
}

// Deriver turns the resources of a CloudFormation stack into a Focus
type Deriver struct {
	Registry *provider.Registry
	Stacks   StackResourceLister
}

// NewDeriver creates a Deriver
func NewDeriver(registry *provider.Registry, stacks StackResourceLister) *Deriver {
	return &Deriver{Registry: registry, Stacks: stacks}
}

// DeriveFromStack returns a fully specified Focus holding exactly the
// resources of the stack. Services follow the registry order and resource
// types follow each provider's declared order.
func (d *Deriver) DeriveFromStack(ctx context.Context, profile string, stack arn.ARN) (*models.Focus, error) {
	if stack.Service != "cloudformation" || stack.ResourceType != "stack" {
		return nil, &models.InvalidArnError{ARN: stack.String(), Reason: "not a CloudFormation stack"}
	}

	resources, err := d.Stacks.ListStackResources(ctx, profile, stack.Region, stack.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list resources of stack %s: %w", stack.String(), err)
	}

	tuples := make([]models.ServiceResourceArnTuple, 0, len(resources))
	for _, res := range resources {
		t, err := d.tuple(stack, res)
		if err != nil {
			return nil, err
		}
		tuples = append(tuples, t)
	}

	return &models.Focus{
		Version: models.FocusVersion,
		Profiles: []models.ProfileFocus{{
			ID: profile,
			Regions: []models.RegionFocus{{
				ID:       stack.Region,
				Services: d.group(tuples),
			}},
		}},
	}, nil
}

func (d *Deriver) tuple(stack arn.ARN, res models.StackResource) (models.ServiceResourceArnTuple, error) {
	parts := strings.Split(res.ResourceType, "::")
	if len(parts) < 3 || parts[0] != "AWS" {
		return models.ServiceResourceArnTuple{}, &models.UnsupportedResourceError{ResourceType: res.ResourceType}
	}

	serviceID := strings.ToLower(parts[1])
	if alias, ok := serviceAliases[serviceID]; ok {
		serviceID = alias
	}
	p, err := d.Registry.Get(serviceID)
	if err != nil {
		return models.ServiceResourceArnTuple{}, err
	}

	resourceType, resourceName, err := p.ArnForCloudFormationResource(res.ResourceType, res)
	if err != nil {
		return models.ServiceResourceArnTuple{}, err
	}
	return models.ServiceResourceArnTuple{
		ServiceID:    serviceID,
		ResourceType: resourceType,
		ARN:          arn.Build(stack.Partition, serviceID, stack.Region, stack.AccountID, resourceName),
	}, nil
}

// group nests tuples by service then resource type, replaying the canonical
// orders so the input order does not matter
func (d *Deriver) group(tuples []models.ServiceResourceArnTuple) []models.ServiceFocus {
	byService := make(map[string]map[string][]string)
	for _, t := range tuples {
		types, ok := byService[t.ServiceID]
		if !ok {
			types = make(map[string][]string)
			byService[t.ServiceID] = types
		}
		types[t.ResourceType] = append(types[t.ResourceType], t.ARN)
	}

	services := []models.ServiceFocus{}
	for _, p := range d.Registry.List() {
		types, ok := byService[p.ID()]
		if !ok {
			continue
		}
		var resourceTypes []models.ResourceTypeFocus
		for _, rt := range p.ResourceTypeIDs() {
			if arns, ok := types[rt]; ok {
				resourceTypes = append(resourceTypes, models.ResourceTypeFocus{ID: rt, ARNs: arns})
			}
		}
		if len(resourceTypes) > 0 {
			services = append(services, models.ServiceFocus{ID: p.ID(), ResourceTypes: resourceTypes})
		}
	}
	return services
}
