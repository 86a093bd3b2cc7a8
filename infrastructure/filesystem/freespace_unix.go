//go:build unix

package filesystem

import "golang.org/x/sys/unix"

// FreeBytes returns the bytes available to unprivileged users on the filesystem holding dir
func FreeBytes(dir string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return 0, err
	}
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil
}
