package domerr

import (
	"fmt"
	"io"

	"github.com/renproject/surge"
)

// SizeHint implements the surge.SizeHinter interface. A Code always
// serialises to exactly 4 bytes: its packed wire form.
func (c Code) SizeHint() int { return 4 }

// Marshal implements the surge.Marshaler interface.
func (c Code) Marshal(w io.Writer, m int) (int, error) {
	m, err := surge.Marshal(w, c.Pack(), m)
	if err != nil {
		return m, fmt.Errorf("marshaling code: %v", err)
	}
	return m, nil
}

// Unmarshal implements the surge.Unmarshaler interface.
func (c *Code) Unmarshal(r io.Reader, m int) (int, error) {
	var wire uint32
	m, err := surge.Unmarshal(r, &wire, m)
	if err != nil {
		return m, fmt.Errorf("unmarshaling code: %v", err)
	}
	*c = *Unpack(wire)
	return m, nil
}
