package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/knchan0x/Mini-SQLite/internal/core/database"
	"github.com/knchan0x/Mini-SQLite/internal/core/minisql"
	"github.com/knchan0x/Mini-SQLite/internal/core/parser"
	"github.com/knchan0x/Mini-SQLite/internal/pkg/util"
)

const prompt = "db > "

type metaCommand int

const (
	Unknown metaCommand = iota + 1
	Help
	Exit
	Tree
	Constants
	ListTables
)

func isMetaCommand(input string) bool {
	return len(input) > 0 && input[:1] == "."
}

// doMetaCommand matches by prefix, so ".exitnow" is still ".exit"
func doMetaCommand(input string) metaCommand {
	switch {
	case strings.HasPrefix(input, "help"):
		return Help
	case strings.HasPrefix(input, "exit"):
		return Exit
	case strings.HasPrefix(input, "btree"):
		return Tree
	case strings.HasPrefix(input, "constant"):
		return Constants
	case strings.HasPrefix(input, "tables"):
		return ListTables
	default:
		return Unknown
	}
}

type repl struct {
	mu  sync.Mutex // held while a command runs against the database
	db  *database.Database
	in  io.Reader
	out io.Writer
}

func newRepl(aDatabase *database.Database, in io.Reader, out io.Writer) *repl {
	return &repl{
		db:  aDatabase,
		in:  in,
		out: out,
	}
}

// run reads commands until .exit, end of input or a cancelled context.
// Only errors that leave the database unusable are returned.
func (r *repl) run(ctx context.Context) error {
	reader := bufio.NewScanner(r.in)
	fmt.Fprint(r.out, prompt)

	for reader.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		input := strings.TrimSpace(reader.Text())
		if input == "" {
			fmt.Fprint(r.out, prompt)
			continue
		}

		exit, err := r.handle(ctx, input)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
		fmt.Fprint(r.out, prompt)
	}
	// Print an additional line if we encountered an EOF character
	fmt.Fprintln(r.out)

	return reader.Err()
}

func (r *repl) handle(ctx context.Context, input string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if isMetaCommand(input) {
		switch doMetaCommand(input[1:]) {
		case Help:
			fmt.Fprintln(r.out, ".help      - Show available commands")
			fmt.Fprintln(r.out, ".exit      - Flush the database and exit")
			fmt.Fprintln(r.out, ".btree     - Print the B+tree")
			fmt.Fprintln(r.out, ".constant  - Print page layout constants")
			fmt.Fprintln(r.out, ".tables    - List all tables in the database")
		case Exit:
			return true, nil
		case Tree:
			if err := r.db.PrintTree(ctx, r.out); err != nil {
				return false, r.executionError(err)
			}
		case Constants:
			minisql.PrintConstants(r.out)
		case ListTables:
			for _, table := range r.db.ListTableNames(ctx) {
				fmt.Fprintln(r.out, table)
			}
		case Unknown:
			fmt.Fprintf(r.out, "Unrecognized command %s\n", input)
		}
		return false, nil
	}

	stmt, err := r.db.PrepareStatement(ctx, input)
	if err != nil {
		fmt.Fprintln(r.out, prepareErrorMessage(input, err))
		return false, nil
	}

	aResult, err := r.db.ExecuteStatement(ctx, stmt)
	if err != nil {
		return false, r.executionError(err)
	}
	if stmt.Kind == minisql.Select {
		util.PrintTable(r.out, aResult.Columns, aResult.Rows)
	}
	fmt.Fprintln(r.out, "Executed.")

	return false, nil
}

func prepareErrorMessage(input string, err error) string {
	switch {
	case errors.Is(err, parser.ErrNegativeID):
		return "ID must be positive."
	case errors.Is(err, parser.ErrStringTooLong):
		return "String is too long."
	case errors.Is(err, parser.ErrNulByte):
		return "String contains NUL byte."
	case errors.Is(err, parser.ErrSyntax):
		return "Syntax error. Could not parse statement."
	case errors.Is(err, parser.ErrUnrecognizedStatement):
		return fmt.Sprintf("Unrecognized keyword at start of %s", input)
	default:
		return fmt.Sprintf("Error: %s", err)
	}
}

// executionError prints recoverable errors and returns the fatal ones
func (r *repl) executionError(err error) error {
	switch {
	case errors.Is(err, minisql.ErrIO), errors.Is(err, minisql.ErrCorruptFile):
		return err
	case errors.Is(err, minisql.ErrDuplicateKey):
		fmt.Fprintln(r.out, "Error: Duplicate key.")
	case errors.Is(err, minisql.ErrMaximumPagesReached):
		fmt.Fprintln(r.out, "Error: Table full.")
	default:
		fmt.Fprintf(r.out, "Error: %s\n", err)
	}
	return nil
}

// close waits for a running command before flushing the database
func (r *repl) close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(r.out, "Closing database, please wait...")
	if err := r.db.Close(ctx); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "Database closed.")
	return nil
}
