package minisql

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type DBFile interface {
	io.ReadSeeker
	io.ReaderAt
	io.WriterAt
}

type syncer interface {
	Sync() error
}

type pagerImpl struct {
	maxPages   uint32
	totalPages uint32 // total number of pages, next unused page index

	pages []*Page

	file     DBFile
	fileSize int64

	logger *zap.Logger
}

type PagerOption func(*pagerImpl)

// WithMaxPages overrides the page capacity of the pager
func WithMaxPages(maxPages uint32) PagerOption {
	return func(p *pagerImpl) {
		p.maxPages = maxPages
	}
}

// NewPager inspects the database file, pages are only read when requested
func NewPager(logger *zap.Logger, file DBFile, opts ...PagerOption) (*pagerImpl, error) {
	aPager := &pagerImpl{
		maxPages: MaxPages,
		file:     file,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(aPager)
	}
	aPager.pages = make([]*Page, aPager.maxPages)

	fileSize, err := aPager.file.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: seek end of file: %w", ErrIO, err)
	}
	aPager.fileSize = fileSize

	// Basic check to verify file size is a multiple of page size (4096B)
	if fileSize%PageSize != 0 {
		return nil, fmt.Errorf("db file size is not divisible by page size: %d: %w", fileSize, ErrCorruptFile)
	}

	totalPages := fileSize / PageSize
	if totalPages > int64(aPager.maxPages) {
		return nil, fmt.Errorf("db file has %d pages, capacity is %d: %w", totalPages, aPager.maxPages, ErrMaximumPagesReached)
	}
	aPager.totalPages = uint32(totalPages)

	logger.Sugar().With(
		"file_size", fileSize,
		"total_pages", totalPages,
		"max_pages", aPager.maxPages,
	).Debug("initialized pager")

	return aPager, nil
}

func (p *pagerImpl) TotalPages() uint32 {
	return p.totalPages
}

// UnusedPageIdx returns index of the next page to allocate, pages are never reused
func (p *pagerImpl) UnusedPageIdx() PageIndex {
	return PageIndex(p.totalPages)
}

func (p *pagerImpl) MaxPages() uint32 {
	return p.maxPages
}

// GetPage returns a cached page, loads it from the file or allocates a new zeroed page
// when the index is past the current page count.
func (p *pagerImpl) GetPage(ctx context.Context, pageIdx PageIndex) (*Page, error) {
	if uint32(pageIdx) >= p.maxPages {
		return nil, fmt.Errorf("page %d out of bounds, capacity is %d pages: %w", pageIdx, p.maxPages, ErrMaximumPagesReached)
	}

	if aPage := p.pages[pageIdx]; aPage != nil {
		return aPage, nil
	}

	aPage := NewPage(pageIdx)

	if uint32(pageIdx) < p.totalPages {
		offset := int64(pageIdx) * PageSize
		// Pages allocated past the end of file but not flushed yet are all zeroes
		if offset < p.fileSize {
			_, err := p.file.ReadAt(aPage.buf, offset)
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: read page %d: %w", ErrIO, pageIdx, err)
			}
		}
		if _, err := aPage.Node(); err != nil {
			return nil, err
		}
		p.logger.Sugar().With(
			"page_index", int(pageIdx),
			"node_type", aPage.NodeType().String(),
		).Debug("loaded page")
	} else {
		p.totalPages = uint32(pageIdx) + 1
		p.logger.Sugar().With(
			"page_index", int(pageIdx),
			"total_pages", int(p.totalPages),
		).Debug("allocated new page")
	}

	p.pages[pageIdx] = aPage

	return aPage, nil
}

// SetNodeType zeroes the whole page and stores the new node type when the type changes,
// callers are expected to initialise the header and cells right after.
func (p *pagerImpl) SetNodeType(ctx context.Context, pageIdx PageIndex, nodeType NodeType) (*Page, error) {
	aPage, err := p.GetPage(ctx, pageIdx)
	if err != nil {
		return nil, fmt.Errorf("set node type: %w", err)
	}
	if aPage.NodeType() == nodeType {
		return aPage, nil
	}
	clear(aPage.buf)
	aPage.buf[NodeTypeOffset] = byte(nodeType)
	return aPage, nil
}

// CopyPage duplicates all bytes of the source page into the destination page
func (p *pagerImpl) CopyPage(ctx context.Context, dstIdx, srcIdx PageIndex) error {
	srcPage, err := p.GetPage(ctx, srcIdx)
	if err != nil {
		return fmt.Errorf("copy page: %w", err)
	}
	dstPage, err := p.GetPage(ctx, dstIdx)
	if err != nil {
		return fmt.Errorf("copy page: %w", err)
	}
	copy(dstPage.buf, srcPage.buf)
	return nil
}

// CopyCell copies one cell between two pages, cell size follows the node type of the source
func (p *pagerImpl) CopyCell(dst *Page, dstIdx uint32, src *Page, srcIdx uint32) {
	copyCell(dst, dstIdx, src, srcIdx)
}

func copyCell(dst *Page, dstIdx uint32, src *Page, srcIdx uint32) {
	if src.NodeType() == NodeTypeInternal {
		copyCellBytes(dst.buf, dstIdx, src.buf, srcIdx, InternalNodeHeaderSize, InternalNodeCellSize)
		return
	}
	copyCellBytes(dst.buf, dstIdx, src.buf, srcIdx, LeafNodeHeaderSize, LeafNodeCellSize)
}

// Flush writes a resident page to its offset in the database file
func (p *pagerImpl) Flush(ctx context.Context, pageIdx PageIndex) error {
	if uint32(pageIdx) >= p.maxPages || p.pages[pageIdx] == nil {
		return fmt.Errorf("flushing nil page %d", pageIdx)
	}

	offset := int64(pageIdx) * PageSize
	if _, err := p.file.WriteAt(p.pages[pageIdx].buf, offset); err != nil {
		return fmt.Errorf("%w: write page %d: %w", ErrIO, pageIdx, err)
	}
	if end := offset + PageSize; end > p.fileSize {
		p.fileSize = end
	}

	return nil
}

// Close flushes every resident page and syncs the file, the file itself stays open
func (p *pagerImpl) Close(ctx context.Context) error {
	var err error
	for pageIdx, aPage := range p.pages {
		if aPage == nil {
			continue
		}
		p.logger.Sugar().With(
			"page_index", pageIdx,
		).Debug("flushing page to disk")
		err = multierr.Append(err, p.Flush(ctx, PageIndex(pageIdx)))
	}
	if aSyncer, ok := p.file.(syncer); ok {
		if syncErr := aSyncer.Sync(); syncErr != nil {
			err = multierr.Append(err, fmt.Errorf("%w: sync: %w", ErrIO, syncErr))
		}
	}
	return err
}
