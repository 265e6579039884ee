package parser

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/knchan0x/Mini-SQLite/internal/core/minisql"
)

var (
	// ErrSyntax is returned when a statement has the wrong shape
	ErrSyntax = errors.New("syntax error")
	// ErrNegativeID is returned when an inserted ID is below zero
	ErrNegativeID = errors.New("id must be positive")
	// ErrStringTooLong is re-exported so callers only match parser errors
	ErrStringTooLong = minisql.ErrStringTooLong
	ErrNulByte       = minisql.ErrNulByte
	// ErrUnrecognizedStatement is returned for an unknown leading keyword
	ErrUnrecognizedStatement = errors.New("unrecognized statement")
)

type step int

const (
	stepBeginning step = iota + 1
	stepInsertID
	stepInsertUsername
	stepInsertEmail
	stepStatementEnd
)

type parser struct {
	minisql.Statement
	i     int // where we are in the input
	input string
	step  step
}

func New() *parser {
	return new(parser)
}

// Parse turns a single input line into a statement. Username and email
// keep their case, only the leading keyword is case insensitive.
func (p *parser) Parse(ctx context.Context, input string) (minisql.Statement, error) {
	p.reset()
	p.setInput(input)

	aStatement, err := p.doParse()
	if err != nil {
		return minisql.Statement{}, err
	}
	if err := p.validate(); err != nil {
		return minisql.Statement{}, err
	}
	return aStatement, nil
}

func (p *parser) setInput(input string) *parser {
	p.input = strings.TrimSpace(input)
	return p
}

func (p *parser) reset() {
	p.Statement = minisql.Statement{}
	p.input = ""
	p.step = stepBeginning
	p.i = 0
}

func (p *parser) doParse() (minisql.Statement, error) {
	if p.input == "" {
		return p.Statement, ErrUnrecognizedStatement
	}
	for p.i < len(p.input) {
		switch p.step {
		case stepBeginning:
			switch strings.ToLower(p.peek()) {
			case "insert":
				if len(strings.Fields(p.input)) != 4 {
					return p.Statement, ErrSyntax
				}
				p.Kind = minisql.Insert
				p.pop()
				p.step = stepInsertID
			case "select":
				p.Kind = minisql.Select
				p.pop()
				p.step = stepStatementEnd
			default:
				return p.Statement, ErrUnrecognizedStatement
			}
		case stepInsertID,
			stepInsertUsername,
			stepInsertEmail:
			if err := p.doParseInsert(); err != nil {
				return p.Statement, err
			}
		case stepStatementEnd:
			// select takes no arguments, anything trailing is ignored
			if p.Kind == minisql.Select {
				p.i = len(p.input)
				continue
			}
			return p.Statement, ErrSyntax
		}
	}
	return p.Statement, nil
}

func (p *parser) peek() string {
	peeked, _ := p.peekWithLength()
	return peeked
}

func (p *parser) pop() string {
	peeked, ln := p.peekWithLength()
	p.i += ln
	p.popWhitespace()
	return peeked
}

func (p *parser) popWhitespace() {
	for ; p.i < len(p.input) && unicode.IsSpace(rune(p.input[p.i])); p.i++ {
	}
}

// peekWithLength returns the next whitespace delimited token
func (p *parser) peekWithLength() (string, int) {
	if p.i >= len(p.input) {
		return "", 0
	}
	var i int
	for i = p.i; i < len(p.input); i++ {
		if unicode.IsSpace(rune(p.input[i])) {
			break
		}
	}
	return p.input[p.i:i], i - p.i
}

func (p *parser) validate() error {
	switch p.Kind {
	case minisql.Insert:
		if p.step != stepStatementEnd {
			return ErrSyntax
		}
		return p.Row.Validate()
	case minisql.Select:
		return nil
	default:
		return ErrUnrecognizedStatement
	}
}
