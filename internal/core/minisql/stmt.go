package minisql

import (
	"context"
	"fmt"
)

type StatementKind int

const (
	Insert StatementKind = iota + 1
	Select
)

func (s StatementKind) String() string {
	switch s {
	case Insert:
		return "INSERT"
	case Select:
		return "SELECT"
	default:
		return "UNKNOWN"
	}
}

type Statement struct {
	Kind StatementKind
	Row  Row // row to insert
}

func (s Statement) Validate() error {
	switch s.Kind {
	case Insert:
		return s.Row.Validate()
	case Select:
		return nil
	default:
		return fmt.Errorf("unrecognised statement kind: %d", s.Kind)
	}
}

type StatementResult struct {
	Columns      []Column
	Rows         []Row
	RowsAffected int
}

// Execute runs a prepared statement against the table
func (t *Table) Execute(ctx context.Context, stmt Statement) (StatementResult, error) {
	if err := stmt.Validate(); err != nil {
		return StatementResult{}, err
	}

	switch stmt.Kind {
	case Insert:
		if err := t.Insert(ctx, stmt.Row); err != nil {
			return StatementResult{}, err
		}
		return StatementResult{RowsAffected: 1}, nil
	case Select:
		rows, err := t.Select(ctx)
		if err != nil {
			return StatementResult{}, err
		}
		return StatementResult{Columns: Columns, Rows: rows}, nil
	default:
		return StatementResult{}, fmt.Errorf("unrecognised statement kind: %d", stmt.Kind)
	}
}
