package parser

import (
	"fmt"
	"math"
	"strconv"

	"github.com/knchan0x/Mini-SQLite/internal/core/minisql"
)

func (p *parser) doParseInsert() error {
	switch p.step {
	case stepInsertID:
		id, err := parseID(p.pop())
		if err != nil {
			return err
		}
		p.Row.ID = id
		p.step = stepInsertUsername
	case stepInsertUsername:
		username := p.pop()
		if len(username) > minisql.UsernameMaxLength {
			return fmt.Errorf("at INSERT: username: %w", ErrStringTooLong)
		}
		p.Row.Username = username
		p.step = stepInsertEmail
	case stepInsertEmail:
		email := p.pop()
		if len(email) > minisql.EmailMaxLength {
			return fmt.Errorf("at INSERT: email: %w", ErrStringTooLong)
		}
		p.Row.Email = email
		p.step = stepStatementEnd
	}
	return nil
}

func parseID(token string) (uint32, error) {
	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("at INSERT: invalid id %q: %w", token, ErrSyntax)
	}
	if id < 0 {
		return 0, ErrNegativeID
	}
	if id > math.MaxUint32 {
		return 0, fmt.Errorf("at INSERT: id %d out of range: %w", id, ErrSyntax)
	}
	return uint32(id), nil
}
