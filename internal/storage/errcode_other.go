//go:build !unix

package storage

import "syscall"

var errnoCodes = map[syscall.Errno]string{
	syscall.EACCES:       "EACCES",
	syscall.EPERM:        "EPERM",
	syscall.ENOENT:       "ENOENT",
	syscall.EISDIR:       "EISDIR",
	syscall.ENOTDIR:      "ENOTDIR",
	syscall.ENAMETOOLONG: "ENAMETOOLONG",
	syscall.EINVAL:       "EINVAL",
	syscall.EIO:          "EIO",
}

func errnoName(errno syscall.Errno) string {
	return errnoCodes[errno]
}
