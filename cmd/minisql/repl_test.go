package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/knchan0x/Mini-SQLite/internal/core/database"
	"github.com/knchan0x/Mini-SQLite/internal/core/parser"
)

func runScript(t *testing.T, path string, commands []string, opts ...database.Option) []string {
	t.Helper()

	ctx := context.Background()
	aDatabase, err := database.Open(ctx, zaptest.NewLogger(t), path, parser.New(), opts...)
	require.NoError(t, err)

	var out bytes.Buffer
	aRepl := newRepl(aDatabase, strings.NewReader(strings.Join(commands, "\n")+"\n"), &out)
	require.NoError(t, aRepl.run(ctx))
	require.NoError(t, aRepl.close(ctx))

	return strings.Split(out.String(), "\n")
}

func TestRepl_InsertAndSelect(t *testing.T) {
	t.Parallel()

	output := runScript(t, filepath.Join(t.TempDir(), "db"), []string{
		"insert 1 user1 person1@example.com",
		"select",
		".exit",
	})

	assert.Equal(t, []string{
		"db > Executed.",
		"db > +------------------------------------------------------------------------------------------+",
		"| id         | username                         | email                                    |",
		"+------------------------------------------------------------------------------------------+",
		"| 1          | user1                            | person1@example.com                      |",
		"+------------------------------------------------------------------------------------------+",
		"Executed.",
		"db > Closing database, please wait...",
		"Database closed.",
		"",
	}, output)
}

func TestRepl_ErrorMessages(t *testing.T) {
	t.Parallel()

	output := runScript(t, filepath.Join(t.TempDir(), "db"), []string{
		"insert 1 user1 person1@example.com",
		"insert 1 user1 person1@example.com",
		"insert -1 cstack foo@bar.com",
		"insert 1 " + strings.Repeat("a", 33) + " foo@bar.com",
		"insert 1 foo",
		"insert 2 ab\x00cd foo@bar.com",
		"update 1 foo bar",
		".foo",
		".exit",
	})

	assert.Equal(t, []string{
		"db > Executed.",
		"db > Error: Duplicate key.",
		"db > ID must be positive.",
		"db > String is too long.",
		"db > Syntax error. Could not parse statement.",
		"db > String contains NUL byte.",
		"db > Unrecognized keyword at start of update 1 foo bar",
		"db > Unrecognized command .foo",
		"db > Closing database, please wait...",
		"Database closed.",
		"",
	}, output)
}

func TestRepl_MetaCommandPrefix(t *testing.T) {
	t.Parallel()

	output := runScript(t, filepath.Join(t.TempDir(), "db"), []string{
		".tablesx",
		".",
		".exitnow",
		".foo",
	})

	assert.Equal(t, []string{
		"db > Default_Table",
		"db > Unrecognized command .",
		"db > Closing database, please wait...",
		"Database closed.",
		"",
	}, output)
}

func TestRepl_TableFull(t *testing.T) {
	t.Parallel()

	commands := make([]string, 0, 22)
	for id := 1; id <= 21; id++ {
		commands = append(commands, fmt.Sprintf("insert %d user%d person%d@example.com", id, id, id))
	}
	commands = append(commands, ".exit")

	output := runScript(t, filepath.Join(t.TempDir(), "db"), commands, database.WithMaxPages(3))

	assert.Equal(t, "db > Executed.", output[19])
	assert.Equal(t, "db > Error: Table full.", output[20])
}

func TestRepl_Persistence(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "db")

	runScript(t, path, []string{
		"insert 3 user3 person3@example.com",
		"insert 1 user1 person1@example.com",
		"insert 2 user2 person2@example.com",
		".exit",
	})

	output := runScript(t, path, []string{
		".btree",
		".exit",
	})

	assert.Equal(t, []string{
		"db > Tree:",
		"- leaf (size 3)",
		"  - 1: user1  person1@example.com",
		"  - 2: user2  person2@example.com",
		"  - 3: user3  person3@example.com",
		"db > Closing database, please wait...",
		"Database closed.",
		"",
	}, output)
}

func TestRepl_EndOfInput(t *testing.T) {
	t.Parallel()

	output := runScript(t, filepath.Join(t.TempDir(), "db"), []string{
		"",
		".tables",
		".constant",
	})

	assert.Equal(t, []string{
		"db > db > Default_Table",
		"db > Constants:",
		"ROW_SIZE: 293",
		"COMMON_NODE_HEADER_SIZE: 6",
		"INTERNAL_NODE_HEADER_SIZE: 14",
		"INTERNAL_NODE_CELL_SIZE: 8",
		"INTERNAL_NODE_SPACE_FOR_CELLS: 4082",
		"INTERNAL_NODE_MAX_CELLS: 510",
		"LEAF_NODE_HEADER_SIZE: 14",
		"LEAF_NODE_CELL_SIZE: 297",
		"LEAF_NODE_SPACE_FOR_CELLS: 4082",
		"LEAF_NODE_MAX_CELLS: 13",
		"db > ",
		"Closing database, please wait...",
		"Database closed.",
		"",
	}, output)
}
