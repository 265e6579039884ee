package minisql

import (
	"errors"
)

const (
	DefaultTableName = "Default_Table"
	// Root node of the table always lives on the first page,
	// splits rewrite its content but never move it.
	RootPageIdx PageIndex = 0
)

var (
	// ErrDuplicateKey is returned when inserting a row whose ID already exists
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnsupported is returned when an insert would require splitting an internal node
	ErrUnsupported = errors.New("unsupported operation: internal node split")
	// ErrIO wraps read / write failures of the backing file
	ErrIO = errors.New("io error")
	// ErrCorruptFile is returned when the backing file does not contain whole pages
	// or a page does not hold a recognisable node
	ErrCorruptFile = errors.New("corrupt db file")
	// ErrMaximumPagesReached is returned when a page index exceeds the pager capacity
	ErrMaximumPagesReached = errors.New("maximum pages reached")
	// ErrStringTooLong is returned when username or email exceed their column width
	ErrStringTooLong = errors.New("string is too long")
	// ErrNulByte is returned for strings containing NUL, which terminates stored strings
	ErrNulByte = errors.New("string contains NUL byte")
)

type PageIndex uint32

func marshalUint32(buf []byte, n uint32, i uint32) {
	buf[i+0] = byte(n >> 0)
	buf[i+1] = byte(n >> 8)
	buf[i+2] = byte(n >> 16)
	buf[i+3] = byte(n >> 24)
}

func unmarshalUint32(buf []byte, i uint32) uint32 {
	return 0 |
		(uint32(buf[i+0]) << 0) |
		(uint32(buf[i+1]) << 8) |
		(uint32(buf[i+2]) << 16) |
		(uint32(buf[i+3]) << 24)
}

func marshalBool(buf []byte, b bool, i uint32) {
	if b {
		buf[i] = 1
		return
	}
	buf[i] = 0
}

func unmarshalBool(buf []byte, i uint32) bool {
	return buf[i] == 1
}
