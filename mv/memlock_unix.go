//go:build unix

package mv

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/sidechannel/dom/word"
)

// tryMlock pins s's backing memory against swap. Locking is best-effort:
// a failure (commonly RLIMIT_MEMLOCK on an unprivileged process) is not
// reported to the caller, since a masked value that cannot be locked is
// still correct, only less defended against a swap-to-disk side channel.
func tryMlock[T word.Word](s []T) {
	if len(s) == 0 {
		return
	}
	b := bytesOf(s)
	_ = unix.Mlock(b)
}

// tryMunlock reverses tryMlock. Also best-effort, for the same reason.
func tryMunlock[T word.Word](s []T) {
	if len(s) == 0 {
		return
	}
	b := bytesOf(s)
	_ = unix.Munlock(b)
}

func bytesOf[T word.Word](s []T) []byte {
	n := len(s) * word.Bytes[T]()
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n)
}
