package main

import (
	"context"
	"sync"

	"github.com/younsl/awsinspector/pkg/formatter"
	"github.com/younsl/awsinspector/pkg/tree"
)

// maxConcurrentExpansions bounds in-flight Children calls
const maxConcurrentExpansions = 16

// walker expands an engine's tree down to a fixed depth. Sibling subtrees
// expand concurrently and are reassembled in their original order.
type walker struct {
	engine   *tree.Engine
	maxDepth int
	sem      chan struct{}
}

func newWalker(engine *tree.Engine, maxDepth int) *walker {
	return &walker{
		engine:   engine,
		maxDepth: maxDepth,
		sem:      make(chan struct{}, maxConcurrentExpansions),
	}
}

// Walk returns the rows of the tree in depth-first order
func (w *walker) Walk(ctx context.Context) ([]formatter.TreeRow, error) {
	return w.expand(ctx, nil, 0)
}

func (w *walker) children(ctx context.Context, parent *tree.Node) ([]*tree.Node, error) {
	select {
	case w.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-w.sem }()
	return w.engine.Children(ctx, parent)
}

func (w *walker) expand(ctx context.Context, parent *tree.Node, depth int) ([]formatter.TreeRow, error) {
	nodes, err := w.children(ctx, parent)
	if err != nil {
		return nil, err
	}

	subtrees := make([][]formatter.TreeRow, len(nodes))
	errs := make([]error, len(nodes))
	var wg sync.WaitGroup
	for i, n := range nodes {
		if !n.Expandable() || depth+1 >= w.maxDepth {
			continue
		}
		wg.Add(1)
		go func(idx int, node *tree.Node) {
			defer wg.Done()
			subtrees[idx], errs[idx] = w.expand(ctx, node, depth+1)
		}(i, n)
	}
	wg.Wait()

	var rows []formatter.TreeRow
	for i, n := range nodes {
		if errs[i] != nil {
			return nil, errs[i]
		}
		rows = append(rows, formatter.TreeRow{Depth: depth, Node: n})
		rows = append(rows, subtrees[i]...)
	}
	return rows, nil
}
