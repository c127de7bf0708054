package tree

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/pkg/arn"
	"github.com/younsl/awsinspector/pkg/focus"
	"github.com/younsl/awsinspector/pkg/utils"
)

// ItemKind identifies what a FocusItem represents
type ItemKind int

const (
	ItemGroup ItemKind = iota
	ItemFilter
	ItemProfile
	ItemRegion
	ItemStack
	ItemError
	ItemPlaceholder
)

// Top-level groups of the Focus view
const (
	FiltersLabel        = "Filters"
	CloudFormationLabel = "CloudFormation Stacks"
	NoStacksLabel       = "No stacks found"
)

// FocusItem is one entry of the Focus view. Filter and stack items are
// selectable and resolve to a Focus.
type FocusItem struct {
	Kind        ItemKind
	Label       string
	Description string
	Tooltip     string

	Key     string // ItemFilter: standard focus key
	Profile string
	Region  string
	StackID string // ItemStack: the stack ARN

	parent *FocusItem
}

// Parent returns the item this one was expanded from
func (i *FocusItem) Parent() *FocusItem { return i.parent }

// Selectable reports whether selecting the item yields a Focus
func (i *FocusItem) Selectable() bool {
	return i.Kind == ItemFilter || i.Kind == ItemStack
}

// StackLister lists the CloudFormation stacks of a region
type StackLister interface {
	ListStacks(ctx context.Context, profile, region string) ([]models.StackInfo, error)
}

// FocusViewOptions wires a FocusView to its collaborators
type FocusViewOptions struct {
	Config   ConfigResolver
	Identity IdentityResolver
	Regions  RegionEnumerator
	Stacks   StackLister
	Deriver  *focus.Deriver
	Logger   *slog.Logger
}

// FocusView offers the focuses a user can select: the built-in filters and
// one derived focus per CloudFormation stack
type FocusView struct {
	opts   FocusViewOptions
	logger *slog.Logger
}

// NewFocusView creates a FocusView
func NewFocusView(opts FocusViewOptions) *FocusView {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &FocusView{opts: opts, logger: logger}
}

// Children returns the child items of item, or the top-level groups when
// item is nil
func (v *FocusView) Children(ctx context.Context, item *FocusItem) ([]*FocusItem, error) {
	if item == nil {
		return []*FocusItem{
			{Kind: ItemGroup, Label: FiltersLabel},
			{Kind: ItemGroup, Label: CloudFormationLabel},
		}, nil
	}

	switch item.Kind {
	case ItemGroup:
		if item.Label == FiltersLabel {
			return v.filters(item), nil
		}
		return v.profiles(ctx, item)
	case ItemProfile:
		return v.regions(ctx, item), nil
	case ItemRegion:
		return v.stacks(ctx, item), nil
	}
	return nil, nil
}

// Select resolves a selectable item into its Focus. Other items return nil.
func (v *FocusView) Select(ctx context.Context, item *FocusItem) (*models.Focus, error) {
	switch item.Kind {
	case ItemFilter:
		return focus.LoadStandard(item.Key)
	case ItemStack:
		stack, err := arn.Parse(item.StackID)
		if err != nil {
			return nil, err
		}
		return v.opts.Deriver.DeriveFromStack(ctx, item.Profile, stack)
	}
	return nil, nil
}

func (v *FocusView) filters(parent *FocusItem) []*FocusItem {
	standard := focus.StandardFocuses()
	items := make([]*FocusItem, len(standard))
	for i, s := range standard {
		items[i] = &FocusItem{
			Kind:    ItemFilter,
			Label:   s.Label,
			Tooltip: "Select to focus on: " + s.Label,
			Key:     s.Key,
			parent:  parent,
		}
	}
	return items
}

func (v *FocusView) profiles(ctx context.Context, parent *FocusItem) ([]*FocusItem, error) {
	ids, err := v.opts.Config.ProfileIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	items := make([]*FocusItem, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(idx int, profile string) {
			defer wg.Done()
			account, alias, err := resolveAccount(ctx, v.opts.Identity, profile)
			if err != nil {
				v.logger.Warn("profile unavailable", "profile", profile, "error", err)
				items[idx] = errorItem(parent, fmt.Sprintf("Invalid Profile: %s. %v", profile, err))
				return
			}
			items[idx] = &FocusItem{
				Kind:        ItemProfile,
				Label:       "Profile: " + profile,
				Description: accountDescription(account, alias),
				Profile:     profile,
				parent:      parent,
			}
		}(i, id)
	}
	wg.Wait()
	return items, nil
}

func (v *FocusView) regions(ctx context.Context, parent *FocusItem) []*FocusItem {
	codes, err := v.opts.Regions.EnabledRegions(ctx, parent.Profile)
	if err != nil {
		return []*FocusItem{errorItem(parent, fmt.Sprintf("Failed to list regions for profile %s. %v", parent.Profile, err))}
	}
	items := make([]*FocusItem, len(codes))
	for i, code := range codes {
		items[i] = &FocusItem{
			Kind:        ItemRegion,
			Label:       code,
			Description: utils.GetRegionDescriptiveName(code),
			Profile:     parent.Profile,
			Region:      code,
			parent:      parent,
		}
	}
	return items
}

func (v *FocusView) stacks(ctx context.Context, parent *FocusItem) []*FocusItem {
	stacks, err := v.opts.Stacks.ListStacks(ctx, parent.Profile, parent.Region)
	if err != nil {
		v.logger.Warn("failed to list stacks", "profile", parent.Profile, "region", parent.Region, "error", err)
		return []*FocusItem{errorItem(parent, err.Error())}
	}
	if len(stacks) == 0 {
		return []*FocusItem{{Kind: ItemPlaceholder, Label: NoStacksLabel, parent: parent}}
	}
	items := make([]*FocusItem, len(stacks))
	for i, s := range stacks {
		items[i] = &FocusItem{
			Kind:        ItemStack,
			Label:       s.StackName,
			Description: s.Status,
			Tooltip:     "Select to focus on: " + s.StackName,
			Profile:     parent.Profile,
			Region:      parent.Region,
			StackID:     s.StackID,
			parent:      parent,
		}
	}
	return items
}

func errorItem(parent *FocusItem, message string) *FocusItem {
	return &FocusItem{
		Kind:    ItemError,
		Label:   "Error: " + message,
		Tooltip: message,
		Profile: parent.Profile,
		Region:  parent.Region,
		parent:  parent,
	}
}
