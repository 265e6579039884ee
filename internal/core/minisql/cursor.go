package minisql

import (
	"context"
	"fmt"
)

type Cursor struct {
	Table      *Table
	PageIdx    PageIndex
	CellIdx    uint32
	EndOfTable bool
}

// Find positions the cursor at the key, descending from the root
func (c *Cursor) Find(ctx context.Context, key uint32) error {
	c.EndOfTable = false
	return c.seek(ctx, c.Table.rootPageIdx, key, 0)
}

func (c *Cursor) seek(ctx context.Context, pageIdx PageIndex, key uint32, depth uint32) error {
	if depth > c.Table.pager.MaxPages() {
		return fmt.Errorf("seek: tree deeper than page count: %w", ErrCorruptFile)
	}

	aPage, err := c.Table.pager.GetPage(ctx, pageIdx)
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	aNode, err := aPage.Node()
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}

	switch aNode := aNode.(type) {
	case *LeafNode:
		c.PageIdx = pageIdx
		c.CellIdx, _ = aNode.Search(key)
		return nil
	case *InternalNode:
		childPageIdx, err := aNode.ChildAt(aNode.FindChild(key))
		if err != nil {
			return fmt.Errorf("seek: %w", err)
		}
		return c.seek(ctx, childPageIdx, key, depth+1)
	default:
		return fmt.Errorf("seek: unexpected node %T", aNode)
	}
}

func (c *Cursor) leaf(ctx context.Context) (*Page, *LeafNode, error) {
	aPage, err := c.Table.pager.GetPage(ctx, c.PageIdx)
	if err != nil {
		return nil, nil, err
	}
	aLeaf := aPage.LeafNode()
	if aLeaf == nil {
		return nil, nil, fmt.Errorf("cursor page %d is not a leaf", c.PageIdx)
	}
	return aPage, aLeaf, nil
}

// Advance moves to the next cell, following the leaf chain
// when the current leaf is exhausted.
func (c *Cursor) Advance(ctx context.Context) error {
	_, aLeaf, err := c.leaf(ctx)
	if err != nil {
		return fmt.Errorf("advance: %w", err)
	}

	c.CellIdx += 1
	if c.CellIdx < aLeaf.NumCells() {
		return nil
	}

	if aLeaf.NextLeaf() == 0 {
		c.EndOfTable = true
		return nil
	}
	c.PageIdx = aLeaf.NextLeaf()
	c.CellIdx = 0

	return nil
}

func (c *Cursor) Key(ctx context.Context) (uint32, error) {
	_, aLeaf, err := c.leaf(ctx)
	if err != nil {
		return 0, fmt.Errorf("cursor key: %w", err)
	}
	if c.CellIdx >= aLeaf.NumCells() {
		return 0, fmt.Errorf("cursor key: cell %d out of range, page %d has %d cells", c.CellIdx, c.PageIdx, aLeaf.NumCells())
	}
	return aLeaf.Key(c.CellIdx), nil
}

// Value deserializes the row the cursor points at
func (c *Cursor) Value(ctx context.Context) (Row, error) {
	_, aLeaf, err := c.leaf(ctx)
	if err != nil {
		return Row{}, fmt.Errorf("cursor value: %w", err)
	}
	if c.CellIdx >= aLeaf.NumCells() {
		return Row{}, fmt.Errorf("cursor value: cell %d out of range, page %d has %d cells", c.CellIdx, c.PageIdx, aLeaf.NumCells())
	}
	return aLeaf.Row(c.CellIdx)
}

// Insert writes the key and row at the cursor position, the cursor must
// point at the sorted insertion point (see Find).
func (c *Cursor) Insert(ctx context.Context, key uint32, aRow Row) error {
	if err := aRow.Validate(); err != nil {
		return err
	}

	_, aLeaf, err := c.leaf(ctx)
	if err != nil {
		return fmt.Errorf("leaf node insert: %w", err)
	}

	numCells := aLeaf.NumCells()
	if numCells >= LeafNodeMaxCells {
		if err := c.splitAndInsert(ctx, key, aRow); err != nil {
			return fmt.Errorf("leaf node split insert: %w", err)
		}
		return nil
	}

	// Make room for new cell, copy from the end so nothing is overwritten
	for i := numCells; i > c.CellIdx; i-- {
		aLeaf.CopyCell(i, i-1)
	}

	if err := aLeaf.SetCell(c.CellIdx, key, aRow); err != nil {
		return fmt.Errorf("leaf node insert: %w", err)
	}
	aLeaf.SetNumCells(numCells + 1)

	return nil
}

// Create a new node and move half the cells over.
// Insert the new value in one of the two nodes.
// Update parent or create a new parent.
func (c *Cursor) splitAndInsert(ctx context.Context, key uint32, aRow Row) error {
	var (
		aTable = c.Table
		aPager = aTable.pager
	)

	aSplitPage, aSplitLeaf, err := c.leaf(ctx)
	if err != nil {
		return err
	}
	originalMaxKey, err := aSplitLeaf.MaxKey()
	if err != nil {
		return err
	}
	if err := aTable.checkSplit(ctx, aSplitLeaf); err != nil {
		return err
	}

	newPageIdx := aPager.UnusedPageIdx()
	aNewPage, err := aPager.GetPage(ctx, newPageIdx)
	if err != nil {
		return err
	}
	aNewLeaf := aNewPage.LeafNode()
	if aNewLeaf == nil {
		return fmt.Errorf("new page %d is not a leaf", newPageIdx)
	}

	aTable.logger.Sugar().With(
		"key", int(key),
		"old_max_key", int(originalMaxKey),
		"split_page_index", int(c.PageIdx),
		"new_page_index", int(newPageIdx),
	).Debug("leaf node split insert")

	aNewLeaf.Init(false)
	aNewLeaf.SetParent(aSplitLeaf.Parent())
	aNewLeaf.SetNextLeaf(aSplitLeaf.NextLeaf())
	aSplitLeaf.SetNextLeaf(newPageIdx)

	// All existing keys plus new key should be divided
	// evenly between old (left) and new (right) nodes.
	// Starting from the right, move each key to correct position.
	for i := uint32(LeafNodeMaxCells); ; i-- {
		destPage := aSplitPage
		if i >= LeafNodeLeftSplitCount {
			destPage = aNewPage
		}
		cellIdx := i % LeafNodeLeftSplitCount

		switch {
		case i == c.CellIdx:
			if err := destPage.LeafNode().SetCell(cellIdx, key, aRow); err != nil {
				return err
			}
		case i > c.CellIdx:
			aPager.CopyCell(destPage, cellIdx, aSplitPage, i-1)
		default:
			aPager.CopyCell(destPage, cellIdx, aSplitPage, i)
		}

		if i == 0 {
			break
		}
	}

	aSplitLeaf.SetNumCells(LeafNodeLeftSplitCount)
	aNewLeaf.SetNumCells(LeafNodeRightSplitCount)

	if aSplitLeaf.IsRoot() {
		return aTable.PromoteNewRoot(ctx, newPageIdx)
	}

	parentPageIdx := aSplitLeaf.Parent()
	aParentPage, err := aPager.GetPage(ctx, parentPageIdx)
	if err != nil {
		return err
	}
	newMaxKey, err := aSplitLeaf.MaxKey()
	if err != nil {
		return err
	}
	aParentPage.InternalNode().UpdateKey(originalMaxKey, newMaxKey)

	return aTable.insertIntoInternal(ctx, parentPageIdx, newPageIdx)
}
