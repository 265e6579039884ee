package minisql

import (
	"fmt"
)

const (
	PageSize = 4096 // 4 kilobytes
	MaxPages = 100
)

// Page owns exactly one node worth of bytes. Nodes are views over the buffer,
// nothing is decoded ahead of time so the in-memory and on-disk forms are the same bytes.
type Page struct {
	Index PageIndex
	buf   []byte
}

func NewPage(pageIdx PageIndex) *Page {
	return &Page{
		Index: pageIdx,
		buf:   make([]byte, PageSize),
	}
}

func (p *Page) Bytes() []byte {
	return p.buf
}

func (p *Page) NodeType() NodeType {
	return NodeType(p.buf[NodeTypeOffset])
}

// Node returns a typed view over the page depending on the stored node type byte.
func (p *Page) Node() (Node, error) {
	switch p.NodeType() {
	case NodeTypeLeaf:
		return &LeafNode{nodeHeader{buf: p.buf}}, nil
	case NodeTypeInternal:
		return &InternalNode{nodeHeader{buf: p.buf}}, nil
	default:
		return nil, fmt.Errorf("page %d has unrecognised node type byte %d: %w", p.Index, p.buf[NodeTypeOffset], ErrCorruptFile)
	}
}

// LeafNode returns leaf view of the page or nil when the page holds an internal node
func (p *Page) LeafNode() *LeafNode {
	if p.NodeType() != NodeTypeLeaf {
		return nil
	}
	return &LeafNode{nodeHeader{buf: p.buf}}
}

// InternalNode returns internal view of the page or nil when the page holds a leaf
func (p *Page) InternalNode() *InternalNode {
	if p.NodeType() != NodeTypeInternal {
		return nil
	}
	return &InternalNode{nodeHeader{buf: p.buf}}
}

func (p *Page) header() nodeHeader {
	return nodeHeader{buf: p.buf}
}

func (p *Page) setParent(parentIdx PageIndex) {
	p.header().SetParent(parentIdx)
}
