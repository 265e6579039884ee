package minisql

import (
	"context"
)

type Pager interface {
	GetPage(context.Context, PageIndex) (*Page, error)
	UnusedPageIdx() PageIndex
	MaxPages() uint32
	SetNodeType(context.Context, PageIndex, NodeType) (*Page, error)
	CopyPage(context.Context, PageIndex, PageIndex) error
	CopyCell(dst *Page, dstIdx uint32, src *Page, srcIdx uint32)
}

type Flusher interface {
	TotalPages() uint32
	Flush(context.Context, PageIndex) error
	Close(context.Context) error
}
