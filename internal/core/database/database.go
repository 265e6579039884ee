package database

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/knchan0x/Mini-SQLite/internal/core/minisql"
	"github.com/knchan0x/Mini-SQLite/internal/pkg/flock"
)

var (
	// ErrDatabaseLocked is returned when another process has the db file open
	ErrDatabaseLocked = flock.ErrLocked
	errDatabaseClosed = fmt.Errorf("database is closed")
)

type Parser interface {
	Parse(context.Context, string) (minisql.Statement, error)
}

type Pager interface {
	minisql.Pager
	minisql.Flusher
}

type options struct {
	pagerOpts []minisql.PagerOption
	tableOpts []minisql.TableOption
}

type Option func(*options)

// WithMaxPages limits how many pages the db file may grow to
func WithMaxPages(maxPages uint32) Option {
	return func(o *options) {
		o.pagerOpts = append(o.pagerOpts, minisql.WithMaxPages(maxPages))
	}
}

func WithMaxInternalCells(maxCells uint32) Option {
	return func(o *options) {
		o.tableOpts = append(o.tableOpts, minisql.WithMaxInternalCells(maxCells))
	}
}

type Database struct {
	Name   string
	parser Parser
	file   *os.File
	pager  Pager
	table  *minisql.Table
	closed bool
	logger *zap.Logger
}

// Open opens or creates the database file at path and locks it for
// exclusive use by this process until Close.
func Open(ctx context.Context, logger *zap.Logger, path string, aParser Parser, opts ...Option) (*Database, error) {
	o := new(options)
	for _, opt := range opts {
		opt(o)
	}

	dbFile, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", minisql.ErrIO, path, err)
	}

	if err := flock.Lock(dbFile); err != nil {
		return nil, multierr.Append(err, dbFile.Close())
	}

	aPager, err := minisql.NewPager(logger, dbFile, o.pagerOpts...)
	if err != nil {
		return nil, multierr.Combine(err, flock.Unlock(dbFile), dbFile.Close())
	}

	aDatabase, err := New(ctx, logger, path, aParser, aPager, o.tableOpts...)
	if err != nil {
		return nil, multierr.Combine(err, flock.Unlock(dbFile), dbFile.Close())
	}
	aDatabase.file = dbFile

	logger.Sugar().With(
		"path", path,
		"total_pages", aPager.TotalPages(),
	).Info("opened database")

	return aDatabase, nil
}

// New creates a database on top of an already open pager
func New(ctx context.Context, logger *zap.Logger, name string, aParser Parser, aPager Pager, opts ...minisql.TableOption) (*Database, error) {
	logger.Sugar().With(
		"name", name,
		"total_pages", aPager.TotalPages(),
	).Debug("initializing database")

	aTable, err := minisql.NewTable(ctx, logger, minisql.DefaultTableName, aPager, opts...)
	if err != nil {
		return nil, err
	}

	return &Database{
		Name:   name,
		parser: aParser,
		pager:  aPager,
		table:  aTable,
		logger: logger,
	}, nil
}

// ListTableNames lists names of all tables in the database
func (d *Database) ListTableNames(ctx context.Context) []string {
	return []string{d.table.Name}
}

// PrepareStatement parses a single input line into a Statement struct
func (d *Database) PrepareStatement(ctx context.Context, input string) (minisql.Statement, error) {
	stmt, err := d.parser.Parse(ctx, input)
	if err != nil {
		return minisql.Statement{}, err
	}
	return stmt, nil
}

func (d *Database) ExecuteStatement(ctx context.Context, stmt minisql.Statement) (minisql.StatementResult, error) {
	if d.closed {
		return minisql.StatementResult{}, errDatabaseClosed
	}
	return d.table.Execute(ctx, stmt)
}

func (d *Database) PrintTree(ctx context.Context, w io.Writer) error {
	if d.closed {
		return errDatabaseClosed
	}
	return d.table.PrintTree(ctx, w)
}

// Close writes every cached page back to disk, then releases the lock and the file.
// Calling Close more than once is a no-op.
func (d *Database) Close(ctx context.Context) error {
	if d.closed {
		return nil
	}
	d.closed = true

	stats, statsErr := d.table.Stats(ctx)
	if statsErr == nil {
		d.logger.Sugar().With(
			"name", d.Name,
			"total_pages", d.pager.TotalPages(),
			"leaves", stats.Leaves,
			"rows", stats.Rows,
			"depth", stats.Depth,
		).Info("closing database")
	}

	err := d.pager.Close(ctx)
	if d.file != nil {
		err = multierr.Combine(err, flock.Unlock(d.file), d.file.Close())
	}
	return err
}
