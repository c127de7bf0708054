package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/younsl/awsinspector/pkg/tree"
)

// TreeRow is one expanded node and its depth below the root
type TreeRow struct {
	Depth int
	Node  *tree.Node
}

var (
	profileColor     = color.New(color.FgCyan, color.Bold)
	regionColor      = color.New(color.FgGreen)
	serviceColor     = color.New(color.Bold)
	errorColor       = color.New(color.FgRed)
	placeholderColor = color.New(color.Faint)
	descColor        = color.New(color.FgHiBlack)
)

// PrintTree prints rows as an indented tree with descriptions aligned in a
// second column. With showARNs, leaves show their full ARN as description.
func PrintTree(w io.Writer, rows []TreeRow, showARNs bool) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "Nothing in focus.")
		return
	}

	labels := make([]string, len(rows))
	width := 0
	for i, row := range rows {
		labels[i] = strings.Repeat("  ", row.Depth) + row.Node.Label
		if lw := StringWidth(labels[i]); lw > width {
			width = lw
		}
	}

	for i, row := range rows {
		n := row.Node
		desc := n.Description
		if n.Kind == tree.KindArn && showARNs {
			desc = n.ARN
		}

		label := labels[i]
		if desc != "" {
			label = PadString(label, width)
		}
		fmt.Fprint(w, colorFor(n.Kind).Sprint(label))
		if desc != "" {
			fmt.Fprint(w, "  ", descColor.Sprint(desc))
		}
		fmt.Fprintln(w)
	}
}

func colorFor(kind tree.Kind) *color.Color {
	switch kind {
	case tree.KindProfile:
		return profileColor
	case tree.KindRegion:
		return regionColor
	case tree.KindService:
		return serviceColor
	case tree.KindError:
		return errorColor
	case tree.KindPlaceholder:
		return placeholderColor
	}
	return color.New()
}
