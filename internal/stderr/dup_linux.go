//go:build linux

package stderr

import "syscall"

// linux/arm64 has no dup2; Dup3 with no flags is equivalent.
func dup2(oldfd, newfd int) error {
	return syscall.Dup3(oldfd, newfd, 0)
}
