package minisql

import (
	"fmt"
)

// Internal node layout
const (
	InternalNodeNumKeysSize      = 4
	InternalNodeNumKeysOffset    = CommonNodeHeaderSize
	InternalNodeRightChildSize   = 4
	InternalNodeRightChildOffset = InternalNodeNumKeysOffset + InternalNodeNumKeysSize
	InternalNodeHeaderSize       = CommonNodeHeaderSize + InternalNodeNumKeysSize + InternalNodeRightChildSize

	InternalNodeKeySize       = 4
	InternalNodeKeyOffset     = 0
	InternalNodeChildSize     = 4
	InternalNodeChildOffset   = InternalNodeKeyOffset + InternalNodeKeySize
	InternalNodeCellSize      = InternalNodeKeySize + InternalNodeChildSize
	InternalNodeSpaceForCells = PageSize - InternalNodeHeaderSize
	InternalNodeMaxCells      = InternalNodeSpaceForCells / InternalNodeCellSize
)

type InternalNode struct {
	nodeHeader
}

// Init turns the node into an empty internal node without touching cell bytes
func (n *InternalNode) Init(isRoot bool) {
	n.buf[NodeTypeOffset] = byte(NodeTypeInternal)
	n.SetRoot(isRoot)
	n.SetNumKeys(0)
	n.SetRightChild(0)
}

func (n *InternalNode) NumKeys() uint32 {
	return unmarshalUint32(n.buf, InternalNodeNumKeysOffset)
}

func (n *InternalNode) SetNumKeys(keys uint32) {
	marshalUint32(n.buf, keys, InternalNodeNumKeysOffset)
}

func (n *InternalNode) RightChild() PageIndex {
	return PageIndex(unmarshalUint32(n.buf, InternalNodeRightChildOffset))
}

func (n *InternalNode) SetRightChild(pageIdx PageIndex) {
	marshalUint32(n.buf, uint32(pageIdx), InternalNodeRightChildOffset)
}

func internalCellOffset(cellIdx uint32) uint32 {
	return InternalNodeHeaderSize + cellIdx*InternalNodeCellSize
}

func (n *InternalNode) Key(cellIdx uint32) uint32 {
	return unmarshalUint32(n.buf, internalCellOffset(cellIdx)+InternalNodeKeyOffset)
}

func (n *InternalNode) SetKey(cellIdx uint32, key uint32) {
	marshalUint32(n.buf, key, internalCellOffset(cellIdx)+InternalNodeKeyOffset)
}

func (n *InternalNode) Child(cellIdx uint32) PageIndex {
	return PageIndex(unmarshalUint32(n.buf, internalCellOffset(cellIdx)+InternalNodeChildOffset))
}

func (n *InternalNode) SetChild(cellIdx uint32, pageIdx PageIndex) {
	marshalUint32(n.buf, uint32(pageIdx), internalCellOffset(cellIdx)+InternalNodeChildOffset)
}

func (n *InternalNode) SetCell(cellIdx uint32, key uint32, pageIdx PageIndex) error {
	if cellIdx >= InternalNodeMaxCells {
		return fmt.Errorf("cell index %d out of range, internal node holds at most %d cells", cellIdx, InternalNodeMaxCells)
	}
	n.SetKey(cellIdx, key)
	n.SetChild(cellIdx, pageIdx)
	return nil
}

// CopyCell copies cell bytes within the node
func (n *InternalNode) CopyCell(dstIdx, srcIdx uint32) {
	copyCellBytes(n.buf, dstIdx, n.buf, srcIdx, InternalNodeHeaderSize, InternalNodeCellSize)
}

// FindChild returns the index of the child which should contain the given key.
// For example, if node has 2 keys, this could return 0 for the leftmost child,
// 1 for the middle child or 2 for the right child.
// The returned value is not a page index!
func (n *InternalNode) FindChild(key uint32) uint32 {
	var (
		minIdx = uint32(0)
		maxIdx = n.NumKeys()
	)
	for minIdx != maxIdx {
		idx := (minIdx + maxIdx) / 2
		keyToRight := n.Key(idx)
		if keyToRight >= key {
			maxIdx = idx
		} else {
			minIdx = idx + 1
		}
	}
	return minIdx
}

// ChildAt returns page index of the nth child, index equal to number
// of keys means the right child.
func (n *InternalNode) ChildAt(childIdx uint32) (PageIndex, error) {
	keysNum := n.NumKeys()
	if childIdx > keysNum {
		return 0, fmt.Errorf("child index %d out of range, node has %d keys", childIdx, keysNum)
	}
	if childIdx == keysNum {
		return n.RightChild(), nil
	}
	return n.Child(childIdx), nil
}

// UpdateKey rewrites the key of the child cell that oldKey routes to.
// The right child has no stored key so there is nothing to update for it.
func (n *InternalNode) UpdateKey(oldKey, newKey uint32) {
	childIdx := n.FindChild(oldKey)
	if childIdx >= n.NumKeys() {
		return
	}
	n.SetKey(childIdx, newKey)
}

func (n *InternalNode) Keys() []uint32 {
	keys := make([]uint32, 0, n.NumKeys())
	for i := uint32(0); i < n.NumKeys(); i++ {
		keys = append(keys, n.Key(i))
	}
	return keys
}

// Children returns page indexes of all children including the right child
func (n *InternalNode) Children() []PageIndex {
	children := make([]PageIndex, 0, n.NumKeys()+1)
	for i := uint32(0); i < n.NumKeys(); i++ {
		children = append(children, n.Child(i))
	}
	return append(children, n.RightChild())
}
