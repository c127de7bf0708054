package tree

import (
	"github.com/younsl/awsinspector/internal/models"
)

// Kind identifies what a Node represents
type Kind int

const (
	KindProfile Kind = iota
	KindRegion
	KindService
	KindResourceType
	KindArn
	KindError
	KindPlaceholder
)

func (k Kind) String() string {
	switch k {
	case KindProfile:
		return "profile"
	case KindRegion:
		return "region"
	case KindService:
		return "service"
	case KindResourceType:
		return "resourceType"
	case KindArn:
		return "arn"
	case KindError:
		return "error"
	case KindPlaceholder:
		return "placeholder"
	}
	return "unknown"
}

// Path is the resolved context of a node: the profile, region, service and
// resource type it sits under
type Path struct {
	Profile      string
	Region       string
	Service      string
	ResourceType string
}

// Node is one entry of the resource tree
type Node struct {
	Kind        Kind
	Label       string
	Description string
	Tooltip     string
	IconPath    string
	ARN         string // KindArn only
	Path        Path

	parent     *Node
	generation uint64

	// Focus fragment below this node, only the field for the node's kind is set
	regions       []models.RegionFocus
	services      []models.ServiceFocus
	resourceTypes []models.ResourceTypeFocus
	arns          []string
}

// Expandable reports whether the node can have children
func (n *Node) Expandable() bool {
	switch n.Kind {
	case KindProfile, KindRegion, KindService, KindResourceType:
		return true
	}
	return false
}

func (n *Node) child(kind Kind, label string) *Node {
	return &Node{
		Kind:       kind,
		Label:      label,
		Path:       n.Path,
		parent:     n,
		generation: n.generation,
	}
}

func errorNode(parent *Node, generation uint64, message string) *Node {
	n := &Node{
		Kind:       KindError,
		Label:      "Error: " + message,
		Tooltip:    message,
		parent:     parent,
		generation: generation,
	}
	if parent != nil {
		n.Path = parent.Path
	}
	return n
}

func placeholderNode(parent *Node, generation uint64, label string) *Node {
	n := &Node{
		Kind:       KindPlaceholder,
		Label:      label,
		parent:     parent,
		generation: generation,
	}
	if parent != nil {
		n.Path = parent.Path
	}
	return n
}
