// Package tree expands a Focus into a lazily materialized tree of AWS
// resources. Hosts pull one level at a time with Engine.Children and
// subscribe to Engine.Changed to learn when the whole tree must be redrawn.
package tree

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/pkg/arn"
	"github.com/younsl/awsinspector/pkg/provider"
	"github.com/younsl/awsinspector/pkg/utils"
)

// Placeholder labels
const (
	SelectFocusLabel = "Please select a focus in the Focus view."
	NoResourcesLabel = "No resources found"
)

// Options wires an Engine to its collaborators
type Options struct {
	Registry *provider.Registry
	Config   ConfigResolver
	Identity IdentityResolver
	Regions  RegionEnumerator
	Logger   *slog.Logger
}

// Engine resolves Focus documents into tree nodes on demand. It keeps no
// tree state between calls; every Children call recomputes its level.
type Engine struct {
	opts   Options
	logger *slog.Logger

	mu         sync.Mutex
	focus      *models.Focus
	generation uint64

	changed chan struct{}
}

// New creates an Engine with no focus selected
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		opts:    opts,
		logger:  logger,
		changed: make(chan struct{}, 1),
	}
}

// SetFocus replaces the current focus and signals Changed. Nodes produced
// for an earlier focus stop being current.
func (e *Engine) SetFocus(f *models.Focus) {
	e.mu.Lock()
	e.focus = f
	e.generation++
	e.mu.Unlock()

	select {
	case e.changed <- struct{}{}:
	default:
	}
}

// Focus returns the current focus, or nil
func (e *Engine) Focus() *models.Focus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focus
}

// Changed receives a value after every SetFocus. Signals coalesce when the
// host is slow to drain them.
func (e *Engine) Changed() <-chan struct{} {
	return e.changed
}

// IsCurrent reports whether n was produced for the current focus
func (e *Engine) IsCurrent(n *Node) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return n != nil && n.generation == e.generation
}

// Parent returns the node n was expanded from, nil for top-level nodes
func (e *Engine) Parent(n *Node) *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Children returns the child nodes of parent, or the top-level nodes when
// parent is nil. Failing AWS calls become Error nodes in place of the
// subtree they would have produced. A returned error means the focus
// references something that can not exist, such as an unregistered service.
func (e *Engine) Children(ctx context.Context, parent *Node) ([]*Node, error) {
	if parent == nil {
		e.mu.Lock()
		f, gen := e.focus, e.generation
		e.mu.Unlock()

		if f == nil {
			return []*Node{placeholderNode(nil, gen, SelectFocusLabel)}, nil
		}
		return e.profiles(ctx, gen, f.Profiles)
	}

	switch parent.Kind {
	case KindProfile:
		return e.regions(ctx, parent), nil
	case KindRegion:
		return e.services(parent)
	case KindService:
		return e.resourceTypes(parent)
	case KindResourceType:
		return e.arns(ctx, parent)
	}
	return nil, nil
}

func (e *Engine) profiles(ctx context.Context, gen uint64, entries []models.ProfileFocus) ([]*Node, error) {
	if models.SoleProfileID(entries) == models.Wildcard {
		ids, err := e.opts.Config.ProfileIDs()
		if err != nil {
			return nil, fmt.Errorf("failed to list profiles: %w", err)
		}
		template := entries[0].Regions
		entries = make([]models.ProfileFocus, len(ids))
		for i, id := range ids {
			entries[i] = models.ProfileFocus{ID: id, Regions: template}
		}
	}

	nodes := make([]*Node, len(entries))
	var wg sync.WaitGroup
	for i, p := range entries {
		wg.Add(1)
		go func(idx int, pf models.ProfileFocus) {
			defer wg.Done()
			nodes[idx] = e.profileNode(ctx, gen, pf)
		}(i, p)
	}
	wg.Wait()
	return nodes, nil
}

func (e *Engine) profileNode(ctx context.Context, gen uint64, pf models.ProfileFocus) *Node {
	account, alias, err := resolveAccount(ctx, e.opts.Identity, pf.ID)
	if err != nil {
		e.logger.Warn("profile unavailable", "profile", pf.ID, "error", err)
		return errorNode(nil, gen, fmt.Sprintf("Invalid Profile: %s. %v", pf.ID, err))
	}
	return &Node{
		Kind:        KindProfile,
		Label:       "Profile: " + pf.ID,
		Description: accountDescription(account, alias),
		Path:        Path{Profile: pf.ID},
		generation:  gen,
		regions:     pf.Regions,
	}
}

func (e *Engine) regions(ctx context.Context, parent *Node) []*Node {
	profile := parent.Path.Profile
	entries := parent.regions

	switch models.SoleRegionID(entries) {
	case models.Wildcard:
		codes, err := e.opts.Regions.EnabledRegions(ctx, profile)
		if err != nil {
			e.logger.Warn("failed to list regions", "profile", profile, "error", err)
			return []*Node{errorNode(parent, parent.generation, fmt.Sprintf("Failed to list regions for profile %s. %v", profile, err))}
		}
		template := entries[0].Services
		nodes := make([]*Node, len(codes))
		for i, code := range codes {
			nodes[i] = regionNode(parent, code, template)
		}
		return nodes

	case models.DefaultRegion:
		code, ok := e.opts.Config.DefaultRegion(profile)
		if !ok {
			return []*Node{errorNode(parent, parent.generation, fmt.Sprintf("Profile %s does not have a default region configured.", profile))}
		}
		return []*Node{regionNode(parent, code, entries[0].Services)}
	}

	nodes := make([]*Node, len(entries))
	for i, r := range entries {
		nodes[i] = regionNode(parent, r.ID, r.Services)
	}
	return nodes
}

func regionNode(parent *Node, code string, services []models.ServiceFocus) *Node {
	n := parent.child(KindRegion, code)
	n.Description = utils.GetRegionDescriptiveName(code)
	n.Path.Region = code
	n.services = services
	return n
}

func (e *Engine) services(parent *Node) ([]*Node, error) {
	if models.SoleServiceID(parent.services) == models.Wildcard {
		providers := e.opts.Registry.List()
		nodes := make([]*Node, len(providers))
		for i, p := range providers {
			nodes[i] = serviceNode(parent, p, wildcardResourceTypes(p, []string{models.Wildcard}))
		}
		return nodes, nil
	}

	nodes := make([]*Node, len(parent.services))
	for i, s := range parent.services {
		p, err := e.opts.Registry.Get(s.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrInternal, err)
		}
		nodes[i] = serviceNode(parent, p, s.ResourceTypes)
	}
	return nodes, nil
}

func serviceNode(parent *Node, p provider.Provider, resourceTypes []models.ResourceTypeFocus) *Node {
	n := parent.child(KindService, p.DisplayName())
	n.IconPath = p.IconPath()
	n.Path.Service = p.ID()
	n.resourceTypes = resourceTypes
	return n
}

// wildcardResourceTypes lists every resource type of p with the given arns
func wildcardResourceTypes(p provider.Provider, arns []string) []models.ResourceTypeFocus {
	ids := p.ResourceTypeIDs()
	out := make([]models.ResourceTypeFocus, len(ids))
	for i, id := range ids {
		out[i] = models.ResourceTypeFocus{ID: id, ARNs: arns}
	}
	return out
}

func (e *Engine) resourceTypes(parent *Node) ([]*Node, error) {
	p, err := e.opts.Registry.Get(parent.Path.Service)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrInternal, err)
	}

	entries := parent.resourceTypes
	if len(entries) == 1 && entries[0].ID == models.Wildcard {
		entries = wildcardResourceTypes(p, entries[0].ARNs)
	}

	nodes := make([]*Node, len(entries))
	for i, rt := range entries {
		_, plural, err := p.ResourceTypeNames(rt.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrInternal, err)
		}
		n := parent.child(KindResourceType, plural)
		n.IconPath = p.IconPath()
		n.Path.ResourceType = rt.ID
		n.arns = rt.ARNs
		nodes[i] = n
	}
	return nodes, nil
}

func (e *Engine) arns(ctx context.Context, parent *Node) ([]*Node, error) {
	path := parent.Path
	p, err := e.opts.Registry.Get(path.Service)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrInternal, err)
	}
	singular, _, err := p.ResourceTypeNames(path.ResourceType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrInternal, err)
	}

	arns := parent.arns
	if len(arns) == 1 && arns[0] == models.Wildcard {
		arns, err = p.ListResourceArns(ctx, path.Profile, path.Region, path.ResourceType)
		if err != nil {
			e.logger.Warn("failed to list resources",
				"profile", path.Profile,
				"region", path.Region,
				"service", path.Service,
				"resourceType", path.ResourceType,
				"error", err,
			)
			return []*Node{errorNode(parent, parent.generation, err.Error())}, nil
		}
	}
	if len(arns) == 0 {
		return []*Node{placeholderNode(parent, parent.generation, NoResourcesLabel)}, nil
	}

	tooltip := p.DisplayName() + " " + singular
	nodes := make([]*Node, len(arns))
	for i, s := range arns {
		a, err := arn.Parse(s)
		if err != nil {
			return nil, err
		}
		name := a.ResourceName
		if name == "" {
			name = "Unknown Resource Name"
		}
		n := parent.child(KindArn, name)
		n.ARN = s
		n.Tooltip = tooltip
		n.IconPath = p.IconPath()
		nodes[i] = n
	}
	return nodes, nil
}
