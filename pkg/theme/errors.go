package theme

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBlockNotFound matches every BlockNotFoundError via errors.Is.
	ErrBlockNotFound = errors.New("theme: block not found")
	// ErrInvalidThemeList matches every InvalidThemeListError via errors.Is.
	ErrInvalidThemeList = errors.New("theme: invalid theme list")
)

// BlockNotFoundError reports a block that no theme in the stack defines.
// Themes keeps the stack in registration order for diagnostics.
type BlockNotFoundError struct {
	Block  string
	Themes []string
}

func (e *BlockNotFoundError) Error() string {
	quoted := make([]string, len(e.Themes))
	for i, name := range e.Themes {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("Block %q does not exist on any of the configured data table themes: %s", e.Block, strings.Join(quoted, ", "))
}

// Is lets errors.Is(err, ErrBlockNotFound) succeed.
func (e *BlockNotFoundError) Is(target error) bool {
	return target == ErrBlockNotFound
}

// InvalidThemeListError reports a themes override that is not a list of
// strings.
type InvalidThemeListError struct {
	Value any
}

func (e *InvalidThemeListError) Error() string {
	return fmt.Sprintf("The \"themes\" option passed in the template must be an array, got %T.", e.Value)
}

// Is lets errors.Is(err, ErrInvalidThemeList) succeed.
func (e *InvalidThemeListError) Is(target error) bool {
	return target == ErrInvalidThemeList
}
