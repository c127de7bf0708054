package tree

import (
	"context"
	"log/slog"
	"sync"

	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/pkg/arn"
	"github.com/younsl/awsinspector/pkg/provider"
)

// NoResourceSelected is the only row shown before a resource is selected
const NoResourceSelected = "No resource selected"

// Details holds the single selected resource and fetches its description
type Details struct {
	registry *provider.Registry
	logger   *slog.Logger

	mu      sync.Mutex
	profile string
	arn     string
	dirty   bool

	changed chan struct{}
}

// NewDetails creates a Details observer with nothing selected
func NewDetails(registry *provider.Registry, logger *slog.Logger) *Details {
	if logger == nil {
		logger = slog.Default()
	}
	return &Details{
		registry: registry,
		logger:   logger,
		changed:  make(chan struct{}, 1),
	}
}

// SetSelectedResource selects a resource. It returns false and signals
// nothing when the pair is already selected.
func (d *Details) SetSelectedResource(profile, arn string) bool {
	d.mu.Lock()
	if d.profile == profile && d.arn == arn {
		d.mu.Unlock()
		return false
	}
	d.profile, d.arn = profile, arn
	d.dirty = true
	d.mu.Unlock()

	select {
	case d.changed <- struct{}{}:
	default:
	}
	return true
}

// Selected returns the selected profile and ARN
func (d *Details) Selected() (profile, arn string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.profile, d.arn
}

// Dirty reports whether the selection changed since the last Fields call
func (d *Details) Dirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

// Changed receives a value whenever the selection changes
func (d *Details) Changed() <-chan struct{} {
	return d.changed
}

// Fields describes the selected resource. The ARN and the service name
// come first. A failing describe call is reported as an Error row.
func (d *Details) Fields(ctx context.Context) ([]models.ResourceField, error) {
	d.mu.Lock()
	profile, s := d.profile, d.arn
	d.dirty = false
	d.mu.Unlock()

	if s == "" {
		return []models.ResourceField{{Field: NoResourceSelected, Type: models.FieldName}}, nil
	}

	a, err := arn.Parse(s)
	if err != nil {
		return nil, err
	}
	p, err := d.registry.Get(a.Service)
	if err != nil {
		return nil, err
	}

	fields := []models.ResourceField{
		{Field: "ARN", Value: s, Type: models.FieldARN},
		{Field: "Service", Value: p.DisplayName(), Type: models.FieldName},
	}
	described, err := p.DescribeResource(ctx, profile, a)
	if err != nil {
		d.logger.Warn("failed to describe resource", "profile", profile, "arn", s, "error", err)
		return append(fields, models.ResourceField{Field: "Error", Value: err.Error(), Type: models.FieldLongText}), nil
	}
	return append(fields, described...), nil
}
