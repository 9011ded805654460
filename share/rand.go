package share

import (
	"github.com/sidechannel/dom/csprng"
	"github.com/sidechannel/dom/word"
)

// randWord draws a uniformly random T from rng, big-endian over its byte
// representation.
func randWord[T word.Word](rng csprng.Source) (T, error) {
	buf := make([]byte, word.Bytes[T]())
	if err := rng.Read(buf); err != nil {
		return 0, err
	}
	var v T
	for _, b := range buf {
		v = (v << 8) | T(b)
	}
	return v, nil
}
