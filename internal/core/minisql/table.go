package minisql

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type Table struct {
	Name        string
	rootPageIdx PageIndex
	pager       Pager
	maxICells   uint32
	logger      *zap.Logger
}

type TableOption func(*Table)

// WithMaxInternalCells lowers how many keys an internal node may hold,
// values above InternalNodeMaxCells are ignored.
func WithMaxInternalCells(maxICells uint32) TableOption {
	return func(t *Table) {
		if maxICells > 0 && maxICells <= InternalNodeMaxCells {
			t.maxICells = maxICells
		}
	}
}

// NewTable binds a table to the pager, when the database is empty
// the root page is initialised as an empty root leaf.
func NewTable(ctx context.Context, logger *zap.Logger, name string, pager Pager, opts ...TableOption) (*Table, error) {
	aTable := &Table{
		Name:        name,
		rootPageIdx: RootPageIdx,
		pager:       pager,
		maxICells:   InternalNodeMaxCells,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(aTable)
	}

	if pager.UnusedPageIdx() != 0 {
		return aTable, nil
	}

	logger.Sugar().With(
		"name", name,
		"root_page", int(aTable.rootPageIdx),
	).Debug("creating root leaf")

	aRootPage, err := pager.GetPage(ctx, aTable.rootPageIdx)
	if err != nil {
		return nil, fmt.Errorf("new table: %w", err)
	}
	aRootLeaf := aRootPage.LeafNode()
	if aRootLeaf == nil {
		return nil, fmt.Errorf("new table: fresh root page is not a leaf: %w", ErrCorruptFile)
	}
	aRootLeaf.Init(true)

	return aTable, nil
}

func (t *Table) RootPageIdx() PageIndex {
	return t.rootPageIdx
}

// Find returns a cursor positioned at the key, or at the cell
// where the key should be inserted when it does not exist.
func (t *Table) Find(ctx context.Context, key uint32) (*Cursor, error) {
	aCursor := &Cursor{Table: t}
	if err := aCursor.Find(ctx, key); err != nil {
		return nil, err
	}
	return aCursor, nil
}

// Start returns a cursor at the first row of the table
func (t *Table) Start(ctx context.Context) (*Cursor, error) {
	aCursor, err := t.Find(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	aPage, err := t.pager.GetPage(ctx, aCursor.PageIdx)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	aCursor.EndOfTable = aPage.LeafNode().NumCells() == 0
	return aCursor, nil
}

// Insert adds a new row unless a row with the same ID already exists,
// in which case nothing is modified and ErrDuplicateKey is returned.
func (t *Table) Insert(ctx context.Context, aRow Row) error {
	if err := aRow.Validate(); err != nil {
		return err
	}

	aCursor, err := t.Find(ctx, aRow.ID)
	if err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	aPage, err := t.pager.GetPage(ctx, aCursor.PageIdx)
	if err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	aLeaf := aPage.LeafNode()
	if aCursor.CellIdx < aLeaf.NumCells() && aLeaf.Key(aCursor.CellIdx) == aRow.ID {
		return fmt.Errorf("key %d: %w", aRow.ID, ErrDuplicateKey)
	}

	return aCursor.Insert(ctx, aRow.ID, aRow)
}

// Select scans the leaf chain and returns all rows ordered by ID
func (t *Table) Select(ctx context.Context) ([]Row, error) {
	aCursor, err := t.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}

	var rows []Row
	for !aCursor.EndOfTable {
		aRow, err := aCursor.Value(ctx)
		if err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
		rows = append(rows, aRow)
		if err := aCursor.Advance(ctx); err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
	}
	return rows, nil
}

// MaxKey returns the largest key stored under the page. Internal nodes
// resolve it through their right child since it holds the largest keys.
func (t *Table) MaxKey(ctx context.Context, aPage *Page) (uint32, error) {
	aNode, err := aPage.Node()
	if err != nil {
		return 0, err
	}
	switch aNode := aNode.(type) {
	case *LeafNode:
		maxKey, err := aNode.MaxKey()
		if err != nil {
			return 0, fmt.Errorf("page %d: %w", aPage.Index, err)
		}
		return maxKey, nil
	case *InternalNode:
		if aNode.RightChild() == aPage.Index {
			return 0, fmt.Errorf("page %d is its own right child: %w", aPage.Index, ErrCorruptFile)
		}
		aRightChildPage, err := t.pager.GetPage(ctx, aNode.RightChild())
		if err != nil {
			return 0, fmt.Errorf("max key: %w", err)
		}
		return t.MaxKey(ctx, aRightChildPage)
	default:
		return 0, fmt.Errorf("page %d: unexpected node %T", aPage.Index, aNode)
	}
}

// PromoteNewRoot handles splitting the root. Old root is copied to a new page and becomes
// the left child, the root page is re-initialised as an internal node pointing to
// the left child and the right child passed in. Root page index does not change.
func (t *Table) PromoteNewRoot(ctx context.Context, rightChildPageIdx PageIndex) error {
	leftChildPageIdx := t.pager.UnusedPageIdx()

	t.logger.Sugar().With(
		"root_index", int(t.rootPageIdx),
		"left_child_index", int(leftChildPageIdx),
		"right_child_index", int(rightChildPageIdx),
	).Debug("promote new root")

	if err := t.pager.CopyPage(ctx, leftChildPageIdx, t.rootPageIdx); err != nil {
		return fmt.Errorf("promote new root: %w", err)
	}
	leftChildPage, err := t.pager.GetPage(ctx, leftChildPageIdx)
	if err != nil {
		return fmt.Errorf("promote new root: %w", err)
	}
	leftChildPage.header().SetRoot(false)
	leftChildPage.setParent(t.rootPageIdx)

	// Children of a copied internal node need to point to its new page
	if leftInternal := leftChildPage.InternalNode(); leftInternal != nil {
		for _, childPageIdx := range leftInternal.Children() {
			aChildPage, err := t.pager.GetPage(ctx, childPageIdx)
			if err != nil {
				return fmt.Errorf("promote new root: %w", err)
			}
			aChildPage.setParent(leftChildPageIdx)
		}
	}

	leftChildMaxKey, err := t.MaxKey(ctx, leftChildPage)
	if err != nil {
		return fmt.Errorf("promote new root: %w", err)
	}

	aRootPage, err := t.pager.SetNodeType(ctx, t.rootPageIdx, NodeTypeInternal)
	if err != nil {
		return fmt.Errorf("promote new root: %w", err)
	}
	aRoot := aRootPage.InternalNode()
	aRoot.Init(true)
	if err := aRoot.SetCell(0, leftChildMaxKey, leftChildPageIdx); err != nil {
		return fmt.Errorf("promote new root: %w", err)
	}
	aRoot.SetNumKeys(1)
	aRoot.SetRightChild(rightChildPageIdx)

	rightChildPage, err := t.pager.GetPage(ctx, rightChildPageIdx)
	if err != nil {
		return fmt.Errorf("promote new root: %w", err)
	}
	rightChildPage.setParent(t.rootPageIdx)

	return nil
}

// insertIntoInternal adds a child / key pair to the parent for the child page.
// Internal nodes are never split, a full parent fails with ErrUnsupported.
func (t *Table) insertIntoInternal(ctx context.Context, parentPageIdx, childPageIdx PageIndex) error {
	aParentPage, err := t.pager.GetPage(ctx, parentPageIdx)
	if err != nil {
		return fmt.Errorf("internal node insert: %w", err)
	}
	aParent := aParentPage.InternalNode()
	if aParent == nil {
		return fmt.Errorf("internal node insert: parent page %d is not an internal node: %w", parentPageIdx, ErrCorruptFile)
	}

	keysNum := aParent.NumKeys()
	if keysNum >= t.maxICells {
		return fmt.Errorf("internal node insert: parent page %d holds %d keys: %w", parentPageIdx, keysNum, ErrUnsupported)
	}

	aChildPage, err := t.pager.GetPage(ctx, childPageIdx)
	if err != nil {
		return fmt.Errorf("internal node insert: %w", err)
	}
	childMaxKey, err := t.MaxKey(ctx, aChildPage)
	if err != nil {
		return fmt.Errorf("internal node insert: %w", err)
	}

	rightChildPageIdx := aParent.RightChild()
	aRightChildPage, err := t.pager.GetPage(ctx, rightChildPageIdx)
	if err != nil {
		return fmt.Errorf("internal node insert: %w", err)
	}
	rightChildMaxKey, err := t.MaxKey(ctx, aRightChildPage)
	if err != nil {
		return fmt.Errorf("internal node insert: %w", err)
	}

	aChildPage.setParent(parentPageIdx)

	if childMaxKey > rightChildMaxKey {
		// Replace right child, former right child becomes the last cell
		if err := aParent.SetCell(keysNum, rightChildMaxKey, rightChildPageIdx); err != nil {
			return fmt.Errorf("internal node insert: %w", err)
		}
		aParent.SetRightChild(childPageIdx)
	} else {
		// Make room for the new cell
		index := aParent.FindChild(childMaxKey)
		for i := keysNum; i > index; i-- {
			aParent.CopyCell(i, i-1)
		}
		if err := aParent.SetCell(index, childMaxKey, childPageIdx); err != nil {
			return fmt.Errorf("internal node insert: %w", err)
		}
	}
	aParent.SetNumKeys(keysNum + 1)

	return nil
}

// checkSplit verifies a leaf split can complete before anything gets modified:
// the parent must have room for one more key and the pager for the new pages.
func (t *Table) checkSplit(ctx context.Context, aLeaf *LeafNode) error {
	pagesNeeded := uint32(1)
	if aLeaf.IsRoot() {
		// new right leaf plus the page the old root gets copied to
		pagesNeeded = 2
	} else {
		aParentPage, err := t.pager.GetPage(ctx, aLeaf.Parent())
		if err != nil {
			return err
		}
		aParent := aParentPage.InternalNode()
		if aParent == nil {
			return fmt.Errorf("parent page %d is not an internal node: %w", aLeaf.Parent(), ErrCorruptFile)
		}
		if aParent.NumKeys() >= t.maxICells {
			return fmt.Errorf("parent page %d holds %d keys: %w", aLeaf.Parent(), aParent.NumKeys(), ErrUnsupported)
		}
	}

	if uint32(t.pager.UnusedPageIdx())+pagesNeeded > t.pager.MaxPages() {
		return fmt.Errorf("split needs %d new pages, capacity is %d: %w", pagesNeeded, t.pager.MaxPages(), ErrMaximumPagesReached)
	}

	return nil
}

type TreeStats struct {
	Leaves uint32
	Rows   uint32
	Depth  uint32
}

// Stats walks down the leftmost path and along the leaf chain
func (t *Table) Stats(ctx context.Context) (TreeStats, error) {
	var stats TreeStats

	aPage, err := t.pager.GetPage(ctx, t.rootPageIdx)
	if err != nil {
		return TreeStats{}, fmt.Errorf("stats: %w", err)
	}
	stats.Depth = 1

	for aInternal := aPage.InternalNode(); aInternal != nil; aInternal = aPage.InternalNode() {
		if stats.Depth > t.pager.MaxPages() {
			return TreeStats{}, fmt.Errorf("stats: tree deeper than page count: %w", ErrCorruptFile)
		}
		childPageIdx, err := aInternal.ChildAt(0)
		if err != nil {
			return TreeStats{}, fmt.Errorf("stats: %w", err)
		}
		aPage, err = t.pager.GetPage(ctx, childPageIdx)
		if err != nil {
			return TreeStats{}, fmt.Errorf("stats: %w", err)
		}
		stats.Depth += 1
	}

	for {
		aLeaf := aPage.LeafNode()
		if aLeaf == nil {
			return TreeStats{}, fmt.Errorf("stats: leaf chain reached non leaf page %d: %w", aPage.Index, ErrCorruptFile)
		}
		stats.Leaves += 1
		stats.Rows += aLeaf.NumCells()
		if aLeaf.NextLeaf() == 0 {
			break
		}
		if stats.Leaves > t.pager.MaxPages() {
			return TreeStats{}, fmt.Errorf("stats: leaf chain longer than page count: %w", ErrCorruptFile)
		}
		aPage, err = t.pager.GetPage(ctx, aLeaf.NextLeaf())
		if err != nil {
			return TreeStats{}, fmt.Errorf("stats: %w", err)
		}
	}

	return stats, nil
}
