package validators

import (
	"errors"
	"path/filepath"
	"strings"
)

var ErrPathOutsideBase = errors.New("path escapes base directory")

// ContainedPath joins requested onto base and returns the cleaned result.
// Anything that resolves outside base, base itself included, is rejected.
func ContainedPath(base, requested string) (string, error) {
	full := filepath.Join(base, filepath.FromSlash(requested))
	if !within(base, full) {
		return "", ErrPathOutsideBase
	}
	return full, nil
}

// ResolvedPath follows symlinks in full, a path produced by ContainedPath,
// and rejects it when the target lies outside the resolved base.
func ResolvedPath(base, full string) (string, error) {
	realBase, err := filepath.EvalSymlinks(base)
	if err != nil {
		return "", err
	}
	realFull, err := filepath.EvalSymlinks(full)
	if err != nil {
		return "", err
	}
	if !within(realBase, realFull) {
		return "", ErrPathOutsideBase
	}
	return realFull, nil
}

func within(base, full string) bool {
	rel, err := filepath.Rel(base, full)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
