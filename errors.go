package halyard

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Find when no dotenv file exists between the
// starting directory and the filesystem root.
var ErrNotFound = errors.New("halyard: no dotenv file found")

// ErrKeyNotFound is returned by UnsetKey when the key is absent.
var ErrKeyNotFound = errors.New("halyard: key not found")

// ParseError describes a syntax error in a dotenv file.
type ParseError struct {
	Line int    // 1-based line number
	Msg  string // What went wrong
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("halyard: parse error at line %d: %s", e.Line, e.Msg)
}
