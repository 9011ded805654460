//go:build !unix

package mv

import "github.com/sidechannel/dom/word"

// tryMlock is a no-op on platforms without an mlock(2) equivalent wired up.
func tryMlock[T word.Word](s []T) {}

// tryMunlock is a no-op on platforms without an mlock(2) equivalent wired up.
func tryMunlock[T word.Word](s []T) {}
