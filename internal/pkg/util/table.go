package util

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/knchan0x/Mini-SQLite/internal/core/minisql"
)

const (
	nonVarCharLength = 10
	maxLength        = 40
)

// PrintTable writes rows as an ASCII table. Columns grow to fit their widest
// value so every row is printed in full.
func PrintTable(w io.Writer, columns []minisql.Column, rows []minisql.Row) {
	values := make([][]string, 0, len(rows))
	for _, aRow := range rows {
		values = append(values, formatValues(aRow.Values()))
	}
	columnSize, tableWidth := computeTableSize(columns, values)

	printBorder(w, tableWidth)
	names := make([]string, 0, len(columns))
	for _, aColumn := range columns {
		names = append(names, aColumn.Name)
	}
	printRow(w, columnSize, names)
	printBorder(w, tableWidth)
	for _, rowValues := range values {
		printRow(w, columnSize, rowValues)
	}
	printBorder(w, tableWidth)
}

func formatValues(values []any) []string {
	formatted := make([]string, 0, len(values))
	for _, aValue := range values {
		formatted = append(formatted, fmt.Sprint(aValue))
	}
	return formatted
}

func printBorder(w io.Writer, tableWidth int) {
	fmt.Fprintf(w, "+%s+\n", strings.Repeat("-", tableWidth-2))
}

func printRow(w io.Writer, columnSize []int, values []string) {
	for i, aValue := range values {
		// pad by runes, the padding size is given as an argument
		padding := columnSize[i] - utf8.RuneCountInString(aValue)
		fmt.Fprintf(w, "| %s%s ", aValue, strings.Repeat(" ", max(padding, 0)))
	}
	fmt.Fprintf(w, "|\n")
}

func computeTableSize(columns []minisql.Column, values [][]string) ([]int, int) {
	// varchar columns start as wide as their limit, up to maxLength
	columnSize := make([]int, len(columns))
	for i, aColumn := range columns {
		if aColumn.Kind == minisql.Varchar {
			columnSize[i] = min(int(aColumn.Size), maxLength)
		} else {
			columnSize[i] = nonVarCharLength
		}
		columnSize[i] = max(columnSize[i], utf8.RuneCountInString(aColumn.Name))
	}
	for _, rowValues := range values {
		for i, aValue := range rowValues {
			columnSize[i] = max(columnSize[i], utf8.RuneCountInString(aValue))
		}
	}

	// left border is | followed by a space, right border is space followed by | (2+2=4)
	// then between each column we have space, |, space (3)
	tableWidth := 4 + (len(columnSize)-1)*3
	for _, columnWidth := range columnSize {
		tableWidth += columnWidth
	}

	return columnSize, tableWidth
}
