package minisql

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// PrintTree writes an indented dump of the B+tree, internal keys are printed
// between the subtrees they separate.
func (t *Table) PrintTree(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, "Tree:")
	return t.printNode(ctx, w, t.rootPageIdx, 0)
}

func (t *Table) printNode(ctx context.Context, w io.Writer, pageIdx PageIndex, level int) error {
	if uint32(level) > t.pager.MaxPages() {
		return fmt.Errorf("print tree: tree deeper than page count: %w", ErrCorruptFile)
	}

	aPage, err := t.pager.GetPage(ctx, pageIdx)
	if err != nil {
		return fmt.Errorf("print tree: %w", err)
	}
	aNode, err := aPage.Node()
	if err != nil {
		return fmt.Errorf("print tree: %w", err)
	}

	switch aNode := aNode.(type) {
	case *LeafNode:
		fmt.Fprintf(w, "%s- leaf (size %d)\n", indent(level), aNode.NumCells())
		for i := uint32(0); i < aNode.NumCells(); i++ {
			key, aRow, err := aNode.Cell(i)
			if err != nil {
				return fmt.Errorf("print tree: %w", err)
			}
			fmt.Fprintf(w, "%s- %d: %s  %s\n", indent(level+1), key, aRow.Username, aRow.Email)
		}
	case *InternalNode:
		fmt.Fprintf(w, "%s- internal (size %d)\n", indent(level), aNode.NumKeys())
		for i := uint32(0); i < aNode.NumKeys(); i++ {
			if err := t.printNode(ctx, w, aNode.Child(i), level+1); err != nil {
				return err
			}
			fmt.Fprintf(w, "%s- key %d\n", indent(level+1), aNode.Key(i))
		}
		return t.printNode(ctx, w, aNode.RightChild(), level+1)
	}

	return nil
}

func indent(level int) string {
	return strings.Repeat("  ", level)
}

// PrintConstants writes the sizes the page layout is derived from
func PrintConstants(w io.Writer) {
	fmt.Fprintln(w, "Constants:")
	fmt.Fprintf(w, "ROW_SIZE: %d\n", RowSize)
	fmt.Fprintf(w, "COMMON_NODE_HEADER_SIZE: %d\n", CommonNodeHeaderSize)
	fmt.Fprintf(w, "INTERNAL_NODE_HEADER_SIZE: %d\n", InternalNodeHeaderSize)
	fmt.Fprintf(w, "INTERNAL_NODE_CELL_SIZE: %d\n", InternalNodeCellSize)
	fmt.Fprintf(w, "INTERNAL_NODE_SPACE_FOR_CELLS: %d\n", InternalNodeSpaceForCells)
	fmt.Fprintf(w, "INTERNAL_NODE_MAX_CELLS: %d\n", InternalNodeMaxCells)
	fmt.Fprintf(w, "LEAF_NODE_HEADER_SIZE: %d\n", LeafNodeHeaderSize)
	fmt.Fprintf(w, "LEAF_NODE_CELL_SIZE: %d\n", LeafNodeCellSize)
	fmt.Fprintf(w, "LEAF_NODE_SPACE_FOR_CELLS: %d\n", LeafNodeSpaceForCells)
	fmt.Fprintf(w, "LEAF_NODE_MAX_CELLS: %d\n", LeafNodeMaxCells)
}
