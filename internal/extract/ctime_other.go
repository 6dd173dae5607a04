//go:build !linux

package extract

import (
	"os"
	"time"
)

func changeTime(info os.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
