package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

var statfs = realStatfs

// SetStatfsForTests overrides the filesystem stat used by the free-space
// check. It returns a restore function.
func SetStatfsForTests(fn func(path string) (free uint64, err error)) func() {
	previous := statfs
	statfs = fn
	return func() { statfs = previous }
}

// CheckSourceAccess verifies the source directory exists and is readable,
// writable, and traversable. Moves remove directory entries, so write access
// on the source is required, not just read.
func CheckSourceAccess(path string) Result {
	return checkDirectoryAccess("Source directory", path)
}

// CheckDestinationAccess verifies the destination root. A missing destination
// passes: the engine creates category directories on demand.
func CheckDestinationAccess(path string) Result {
	const name = "Destination root"
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	return checkDirectoryAccess(name, path)
}

// CheckFreeSpace warns when the destination filesystem has less free space
// than the bytes a run may need to copy. Same-filesystem renames consume no
// space, so a failed check is advisory, never fatal.
func CheckFreeSpace(path string, requiredBytes int64) Result {
	const name = "Destination free space"
	free, err := statfs(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	if requiredBytes > 0 && free < uint64(requiredBytes) {
		return Result{Name: name, Detail: fmt.Sprintf("%s has %d bytes free, candidates total %d", path, free, requiredBytes)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d bytes free", free)}
}

func checkDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func realStatfs(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
