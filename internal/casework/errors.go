package casework

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBlockNotFound is returned for an unknown active block id.
	ErrBlockNotFound = errors.New("victim block not found")
	// ErrSavedIndexOutOfRange is returned for a saved position that does not exist.
	ErrSavedIndexOutOfRange = errors.New("saved victim index out of range")
)

// ValidationError names the fields a victim block is missing. It never carries a
// partially applied mutation: the session is unchanged when it is returned.
type ValidationError struct {
	BlockID     string
	VictimIndex int
	Fields      []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("victim %d (block %s): missing %s", e.VictimIndex+1, e.BlockID, strings.Join(e.Fields, ", "))
}

// PersistenceError reports a store that could not be read or written.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
