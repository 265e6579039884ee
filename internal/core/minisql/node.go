package minisql

import (
	"fmt"
)

type NodeType byte

const (
	NodeTypeLeaf     NodeType = 0
	NodeTypeInternal NodeType = 1
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeLeaf:
		return "leaf"
	case NodeTypeInternal:
		return "internal"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

// Common node header layout
const (
	NodeTypeSize         = 1
	NodeTypeOffset       = 0
	IsRootSize           = 1
	IsRootOffset         = NodeTypeSize
	ParentPointerSize    = 4
	ParentPointerOffset  = IsRootOffset + IsRootSize
	CommonNodeHeaderSize = NodeTypeSize + IsRootSize + ParentPointerSize
)

// Header is a decoded copy of the common node header
type Header struct {
	NodeType NodeType
	IsRoot   bool
	Parent   PageIndex
}

// Node is either *LeafNode or *InternalNode, use a type switch to tell them apart.
type Node interface {
	NodeType() NodeType
	IsRoot() bool
	SetRoot(bool)
	Parent() PageIndex
	SetParent(PageIndex)
	Header() Header
	isNode()
}

type nodeHeader struct {
	buf []byte
}

func (h nodeHeader) NodeType() NodeType {
	return NodeType(h.buf[NodeTypeOffset])
}

func (h nodeHeader) IsRoot() bool {
	return unmarshalBool(h.buf, IsRootOffset)
}

func (h nodeHeader) SetRoot(isRoot bool) {
	marshalBool(h.buf, isRoot, IsRootOffset)
}

func (h nodeHeader) Parent() PageIndex {
	return PageIndex(unmarshalUint32(h.buf, ParentPointerOffset))
}

func (h nodeHeader) SetParent(parentIdx PageIndex) {
	marshalUint32(h.buf, uint32(parentIdx), ParentPointerOffset)
}

func (h nodeHeader) Header() Header {
	return Header{
		NodeType: h.NodeType(),
		IsRoot:   h.IsRoot(),
		Parent:   h.Parent(),
	}
}

func (h nodeHeader) isNode() {}

// copyCellBytes copies size bytes of the srcIdx-th cell into the dstIdx-th cell,
// both cell arrays start at headerSize. Source and destination may be the same buffer.
func copyCellBytes(dst []byte, dstIdx uint32, src []byte, srcIdx uint32, headerSize, cellSize uint32) {
	var (
		dstOffset = headerSize + dstIdx*cellSize
		srcOffset = headerSize + srcIdx*cellSize
	)
	copy(dst[dstOffset:dstOffset+cellSize], src[srcOffset:srcOffset+cellSize])
}
