package minisql

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/knchan0x/Mini-SQLite/internal/pkg/logging"
)

//go:generate mockery --name=Pager --structname=MockPager --inpackage --case=snake --testonly

var (
	gen = newDataGen(time.Now().Unix())

	testLogger *zap.Logger
)

func init() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "debug"
	}

	var err error
	testLogger, err = logging.NewLogger(level)
	if err != nil {
		panic(err)
	}
}

type dataGen struct {
	*gofakeit.Faker
}

func newDataGen(seed int64) *dataGen {
	g := dataGen{
		Faker: gofakeit.New(seed),
	}

	return &g
}

func (g *dataGen) Row(id uint32) Row {
	return Row{
		ID:       id,
		Username: truncate(g.Username(), UsernameMaxLength),
		Email:    truncate(g.Email(), EmailMaxLength),
	}
}

// Rows returns rows with IDs 1..number in random order
func (g *dataGen) Rows(number int) []Row {
	ids := make([]int, 0, number)
	for i := 1; i <= number; i++ {
		ids = append(ids, i)
	}
	g.ShuffleInts(ids)

	rows := make([]Row, 0, number)
	for _, id := range ids {
		rows = append(rows, g.Row(uint32(id)))
	}
	return rows
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func testRow(id uint32) Row {
	return Row{
		ID:       id,
		Username: fmt.Sprintf("user%d", id),
		Email:    fmt.Sprintf("person%d@example.com", id),
	}
}

type testDB struct {
	file  *os.File
	pager *pagerImpl
	table *Table
}

func newTestDB(t *testing.T, pagerOpts []PagerOption, tableOpts ...TableOption) *testDB {
	t.Helper()

	return openTestDB(t, newTestFile(t), testLogger, pagerOpts, tableOpts...)
}

func openTestDB(t *testing.T, dbFile *os.File, logger *zap.Logger, pagerOpts []PagerOption, tableOpts ...TableOption) *testDB {
	t.Helper()

	aPager, err := NewPager(logger, dbFile, pagerOpts...)
	require.NoError(t, err)

	aTable, err := NewTable(context.Background(), logger, DefaultTableName, aPager, tableOpts...)
	require.NoError(t, err)

	return &testDB{
		file:  dbFile,
		pager: aPager,
		table: aTable,
	}
}

func newLeafPage(pageIdx, parentIdx PageIndex, isRoot bool, nextLeaf PageIndex, keys ...uint32) *Page {
	aPage := NewPage(pageIdx)
	aLeaf := aPage.LeafNode()
	aLeaf.Init(isRoot)
	aLeaf.SetParent(parentIdx)
	aLeaf.SetNextLeaf(nextLeaf)
	for i, key := range keys {
		if err := aLeaf.SetCell(uint32(i), key, testRow(key)); err != nil {
			panic(err)
		}
	}
	aLeaf.SetNumCells(uint32(len(keys)))
	return aPage
}

type iCell struct {
	key   uint32
	child PageIndex
}

func newInternalPage(pageIdx, parentIdx PageIndex, isRoot bool, rightChild PageIndex, cells ...iCell) *Page {
	aPage := NewPage(pageIdx)
	aPage.buf[NodeTypeOffset] = byte(NodeTypeInternal)
	aInternal := aPage.InternalNode()
	aInternal.Init(isRoot)
	aInternal.SetParent(parentIdx)
	aInternal.SetRightChild(rightChild)
	for i, aCell := range cells {
		if err := aInternal.SetCell(uint32(i), aCell.key, aCell.child); err != nil {
			panic(err)
		}
	}
	aInternal.SetNumKeys(uint32(len(cells)))
	return aPage
}

/*
Below is a simple B tree for testing purposes

		           +-------------------+
		           |       *,5,*       |
		           +-------------------+
		          /                     \
		     +-------+                  +--------+
		     | *,2,* |                  | *,18,* |
		     +-------+                  +--------+
		    /         \                /          \
	 +---------+     +-----+     +-----------+    +------+
	 |   1,2   |     |  5  |     |   12,18   |    |  21  |
	 +---------+     +-----+     +-----------+    +------+
*/
func newTestBtree() (*Page, []*Page, []*Page) {
	var (
		aRootPage     = newInternalPage(0, 0, true, 2, iCell{key: 5, child: 1})
		internalPage1 = newInternalPage(1, 0, false, 4, iCell{key: 2, child: 3})
		internalPage2 = newInternalPage(2, 0, false, 6, iCell{key: 18, child: 5})
		leafPage1     = newLeafPage(3, 1, false, 4, 1, 2)
		leafPage2     = newLeafPage(4, 1, false, 5, 5)
		leafPage3     = newLeafPage(5, 2, false, 6, 12, 18)
		leafPage4     = newLeafPage(6, 2, false, 0, 21)
	)

	return aRootPage, []*Page{internalPage1, internalPage2}, []*Page{leafPage1, leafPage2, leafPage3, leafPage4}
}
