// Package fsutil provides file system utility functions.
package fsutil

import "os"

// IsFile reports whether path exists and is a regular file. Symlinks are
// followed.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
