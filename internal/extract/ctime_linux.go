//go:build linux

package extract

import (
	"os"
	"syscall"
	"time"
)

// changeTime returns the inode change time, the closest stand-in for a
// creation timestamp the portable stat result offers on Linux.
func changeTime(info os.FileInfo) (time.Time, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(st.Ctim.Sec, st.Ctim.Nsec), true
}
