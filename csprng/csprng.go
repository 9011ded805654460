// Package csprng implements the CSPRNG collaborator described in §6 of this
// library's specification: a single capability, reading cryptographically
// secure random bytes into a caller-supplied buffer.
//
// The reference implementation reads directly from /dev/urandom (POSIX) or
// the system-preferred RNG (Windows) on every call. This package instead
// buffers a ChaCha20 keystream seeded from the OS CSPRNG and periodically
// reseeded from it, because the gadget and converter hot paths of this
// library draw randomness in small, frequent bursts (a single DOM AND at
// order 6 draws 27 words: 21 for the share pairs and 6 for the output
// refresh) and a direct syscall per call is wasteful.
// Whichever source is used, the contract is the same: Read either fills buf
// completely with cryptographically secure bytes, or returns a non-nil
// error and leaves buf's contents unspecified.
package csprng

import (
	"crypto/rand"
	"io"
	"sync"

	"golang.org/x/crypto/chacha20"

	"github.com/sidechannel/dom/domerr"
)

// reseedAfterBytes bounds how much keystream a single ChaCha20 instance
// produces before it is re-seeded from the OS CSPRNG. 1 GiB keeps the
// reseed frequency far below anything a realistic calling pattern needs
// while still bounding the blast radius of a single stream's internal
// counter ever wrapping.
const reseedAfterBytes = 1 << 30

// Source is the CSPRNG capability this library depends on.
type Source interface {
	// Read fills buf entirely with cryptographically secure random bytes,
	// or returns a non-nil error. A short read is always reported as an
	// error; there is no partial-success case.
	Read(buf []byte) error
}

// DRBG is a buffered ChaCha20 deterministic random bit generator, reseeded
// from the operating system's CSPRNG.
type DRBG struct {
	mu     sync.Mutex
	cipher *chacha20.Cipher
	used   uint64
}

// New constructs a DRBG seeded from crypto/rand.
func New() (*DRBG, error) {
	d := &DRBG{}
	if err := d.reseedLocked(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DRBG) reseedLocked() error {
	var key [chacha20.KeySize]byte
	var nonce [chacha20.NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return domerr.New(domerr.CsprngFailed, domerr.FuncMask, 0)
	}
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return domerr.New(domerr.CsprngFailed, domerr.FuncMask, 1)
	}
	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		return domerr.New(domerr.CsprngFailed, domerr.FuncMask, 2)
	}
	d.cipher = cipher
	d.used = 0
	return nil
}

// Read implements Source.
func (d *DRBG) Read(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.used+uint64(len(buf)) > reseedAfterBytes {
		if err := d.reseedLocked(); err != nil {
			return err
		}
	}
	for i := range buf {
		buf[i] = 0
	}
	d.cipher.XORKeyStream(buf, buf)
	d.used += uint64(len(buf))
	return nil
}

var (
	defaultOnce   sync.Once
	defaultSource *DRBG
	defaultErr    error
)

func defaultDRBG() (*DRBG, error) {
	defaultOnce.Do(func() {
		defaultSource, defaultErr = New()
	})
	return defaultSource, defaultErr
}

// Read fills buf using the package-level default DRBG, lazily initialised
// on first use. This is the read_random_bytes(buf, len) -> ok|fail
// capability every other package in this module calls through Source.
func Read(buf []byte) error {
	d, err := defaultDRBG()
	if err != nil {
		return err
	}
	return d.Read(buf)
}
