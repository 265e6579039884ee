package minisql

import (
	"fmt"
)

// Leaf node layout
const (
	LeafNodeNumCellsSize   = 4
	LeafNodeNumCellsOffset = CommonNodeHeaderSize
	LeafNodeNextLeafSize   = 4
	LeafNodeNextLeafOffset = LeafNodeNumCellsOffset + LeafNodeNumCellsSize
	LeafNodeHeaderSize     = CommonNodeHeaderSize + LeafNodeNumCellsSize + LeafNodeNextLeafSize

	LeafNodeKeySize       = 4
	LeafNodeKeyOffset     = 0
	LeafNodeValueSize     = RowSize
	LeafNodeValueOffset   = LeafNodeKeyOffset + LeafNodeKeySize
	LeafNodeCellSize      = LeafNodeKeySize + LeafNodeValueSize
	LeafNodeSpaceForCells = PageSize - LeafNodeHeaderSize
	LeafNodeMaxCells      = LeafNodeSpaceForCells / LeafNodeCellSize

	// When splitting a full leaf, MaxCells + 1 cells get divided
	// between the old (left) and new (right) node, left gets the extra one.
	LeafNodeRightSplitCount = (LeafNodeMaxCells + 1) / 2
	LeafNodeLeftSplitCount  = LeafNodeMaxCells + 1 - LeafNodeRightSplitCount
)

type LeafNode struct {
	nodeHeader
}

// Init resets the node header to an empty leaf, cell bytes are left as they are
func (n *LeafNode) Init(isRoot bool) {
	n.buf[NodeTypeOffset] = byte(NodeTypeLeaf)
	n.SetRoot(isRoot)
	n.SetNumCells(0)
	n.SetNextLeaf(0)
}

func (n *LeafNode) NumCells() uint32 {
	return unmarshalUint32(n.buf, LeafNodeNumCellsOffset)
}

func (n *LeafNode) SetNumCells(cells uint32) {
	marshalUint32(n.buf, cells, LeafNodeNumCellsOffset)
}

// NextLeaf returns page index of the right sibling, 0 means this is the last leaf
func (n *LeafNode) NextLeaf() PageIndex {
	return PageIndex(unmarshalUint32(n.buf, LeafNodeNextLeafOffset))
}

func (n *LeafNode) SetNextLeaf(pageIdx PageIndex) {
	marshalUint32(n.buf, uint32(pageIdx), LeafNodeNextLeafOffset)
}

func leafCellOffset(cellIdx uint32) uint32 {
	return LeafNodeHeaderSize + cellIdx*LeafNodeCellSize
}

func (n *LeafNode) Key(cellIdx uint32) uint32 {
	return unmarshalUint32(n.buf, leafCellOffset(cellIdx)+LeafNodeKeyOffset)
}

func (n *LeafNode) setKey(cellIdx uint32, key uint32) {
	marshalUint32(n.buf, key, leafCellOffset(cellIdx)+LeafNodeKeyOffset)
}

// Value returns the raw row bytes of a cell, the slice aliases the page buffer
func (n *LeafNode) Value(cellIdx uint32) []byte {
	offset := leafCellOffset(cellIdx) + LeafNodeValueOffset
	return n.buf[offset : offset+LeafNodeValueSize]
}

func (n *LeafNode) Row(cellIdx uint32) (Row, error) {
	return UnmarshalRow(n.Value(cellIdx))
}

func (n *LeafNode) Cell(cellIdx uint32) (uint32, Row, error) {
	aRow, err := n.Row(cellIdx)
	if err != nil {
		return 0, Row{}, err
	}
	return n.Key(cellIdx), aRow, nil
}

func (n *LeafNode) SetCell(cellIdx uint32, key uint32, aRow Row) error {
	if cellIdx >= LeafNodeMaxCells {
		return fmt.Errorf("cell index %d out of range, leaf holds at most %d cells", cellIdx, LeafNodeMaxCells)
	}
	if err := aRow.Marshal(n.Value(cellIdx)); err != nil {
		return err
	}
	n.setKey(cellIdx, key)
	return nil
}

// CopyCell copies cell bytes within the node
func (n *LeafNode) CopyCell(dstIdx, srcIdx uint32) {
	copyCellBytes(n.buf, dstIdx, n.buf, srcIdx, LeafNodeHeaderSize, LeafNodeCellSize)
}

func (n *LeafNode) Keys() []uint32 {
	keys := make([]uint32, 0, n.NumCells())
	for i := uint32(0); i < n.NumCells(); i++ {
		keys = append(keys, n.Key(i))
	}
	return keys
}

// MaxKey returns key of the last cell
func (n *LeafNode) MaxKey() (uint32, error) {
	if n.NumCells() == 0 {
		return 0, fmt.Errorf("leaf node has no cells")
	}
	return n.Key(n.NumCells() - 1), nil
}

// Search returns index of the key or of the position where it should be inserted,
// the flag reports whether the key was found.
func (n *LeafNode) Search(key uint32) (uint32, bool) {
	var (
		minIdx uint32
		maxIdx = n.NumCells()
	)
	for maxIdx != minIdx {
		idx := (minIdx + maxIdx) / 2
		keyAtIdx := n.Key(idx)
		if key == keyAtIdx {
			return idx, true
		}
		if key < keyAtIdx {
			maxIdx = idx
		} else {
			minIdx = idx + 1
		}
	}
	return minIdx, false
}
