package minisql

import (
	"bytes"
	"fmt"
	"strings"
)

type ColumnKind int

const (
	Int4 ColumnKind = iota + 1
	Varchar
)

type Column struct {
	Kind ColumnKind
	Size uint32
	Name string
}

const (
	UsernameMaxLength = 32
	EmailMaxLength    = 255

	IDSize       = 4
	UsernameSize = UsernameMaxLength + 1
	EmailSize    = EmailMaxLength + 1

	IDOffset       = 0
	UsernameOffset = IDOffset + IDSize
	EmailOffset    = UsernameOffset + UsernameSize

	RowSize = IDSize + UsernameSize + EmailSize
)

// Columns describes the fixed schema of the table, every row has the same layout.
var Columns = []Column{
	{Kind: Int4, Size: IDSize, Name: "id"},
	{Kind: Varchar, Size: UsernameMaxLength, Name: "username"},
	{Kind: Varchar, Size: EmailMaxLength, Name: "email"},
}

type Row struct {
	ID       uint32
	Username string
	Email    string
}

func (r Row) Validate() error {
	if len(r.Username) > UsernameMaxLength {
		return fmt.Errorf("username has %d bytes, limit is %d: %w", len(r.Username), UsernameMaxLength, ErrStringTooLong)
	}
	if len(r.Email) > EmailMaxLength {
		return fmt.Errorf("email has %d bytes, limit is %d: %w", len(r.Email), EmailMaxLength, ErrStringTooLong)
	}
	if strings.IndexByte(r.Username, 0) >= 0 {
		return fmt.Errorf("username: %w", ErrNulByte)
	}
	if strings.IndexByte(r.Email, 0) >= 0 {
		return fmt.Errorf("email: %w", ErrNulByte)
	}
	return nil
}

// Values returns row fields in the order of Columns
func (r Row) Values() []any {
	return []any{r.ID, r.Username, r.Email}
}

func (r Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", r.ID, r.Username, r.Email)
}

// Marshal writes the row into buf which must be at least RowSize long.
// Unused string bytes are zeroed so stale data never leaks between cells.
func (r Row) Marshal(buf []byte) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if len(buf) < RowSize {
		return fmt.Errorf("row buffer has %d bytes, need %d", len(buf), RowSize)
	}

	marshalUint32(buf, r.ID, IDOffset)

	clear(buf[UsernameOffset : UsernameOffset+UsernameSize])
	copy(buf[UsernameOffset:], r.Username)

	clear(buf[EmailOffset : EmailOffset+EmailSize])
	copy(buf[EmailOffset:], r.Email)

	return nil
}

func UnmarshalRow(buf []byte) (Row, error) {
	if len(buf) < RowSize {
		return Row{}, fmt.Errorf("row buffer has %d bytes, need %d", len(buf), RowSize)
	}
	return Row{
		ID:       unmarshalUint32(buf, IDOffset),
		Username: cString(buf[UsernameOffset : UsernameOffset+UsernameSize]),
		Email:    cString(buf[EmailOffset : EmailOffset+EmailSize]),
	}, nil
}

func cString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}
