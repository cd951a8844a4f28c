package storage

import (
	"errors"
	"io/fs"
	"syscall"
)

// IsNotExist reports whether err means the requested file is absent.
// ENOTDIR does not count as absent.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// ErrorCode returns the symbolic OS error code for a filesystem error,
// e.g. "EACCES" or "EISDIR". Unrecognised errors yield "UNKNOWN".
func ErrorCode(err error) string {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		if code := errnoName(errno); code != "" {
			return code
		}
	}

	switch {
	case errors.Is(err, fs.ErrPermission):
		return "EACCES"
	case errors.Is(err, fs.ErrNotExist):
		return "ENOENT"
	default:
		return "UNKNOWN"
	}
}
