// Package minisqltest provides row generators for tests outside of the minisql package.
package minisqltest

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/knchan0x/Mini-SQLite/internal/core/minisql"
)

type DataGen struct {
	*gofakeit.Faker
}

func NewDataGen(seed int64) *DataGen {
	g := DataGen{
		Faker: gofakeit.New(seed),
	}

	return &g
}

func (g *DataGen) Row(id uint32) minisql.Row {
	return minisql.Row{
		ID:       id,
		Username: truncate(g.Username(), minisql.UsernameMaxLength),
		Email:    truncate(g.Email(), minisql.EmailMaxLength),
	}
}

// Rows returns rows with unique IDs 1..number in random order
func (g *DataGen) Rows(number int) []minisql.Row {
	ids := make([]int, 0, number)
	for i := 1; i <= number; i++ {
		ids = append(ids, i)
	}
	g.ShuffleInts(ids)

	rows := make([]minisql.Row, 0, number)
	for _, id := range ids {
		rows = append(rows, g.Row(uint32(id)))
	}
	return rows
}

// InsertInput formats a row the way the REPL expects it
func InsertInput(aRow minisql.Row) string {
	return fmt.Sprintf("insert %d %s %s", aRow.ID, aRow.Username, aRow.Email)
}

// truncate also drops whitespace so generated values stay single tokens
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), "")
	if len(s) > n {
		return s[:n]
	}
	return s
}
