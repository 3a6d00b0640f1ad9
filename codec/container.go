package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/cocosip/go-pcx-codec/pixel"
)

const (
	// MagicSize is the length of a container tag
	MagicSize = 4

	// MaxPixels bounds the image size a container may declare
	MaxPixels = 1 << 28
)

// Writer builds a container: magic, width and height followed by
// codec-specific uvarint framed fields.
type Writer struct {
	buf []byte
}

// NewWriter starts a container for a width x height image
func NewWriter(magic string, width, height int) *Writer {
	w := &Writer{buf: make([]byte, 0, 64)}
	w.buf = append(w.buf, magic[:MagicSize]...)
	w.Uvarint(uint64(width))
	w.Uvarint(uint64(height))
	return w
}

// Uvarint appends v
func (w *Writer) Uvarint(v uint64) {
	w.buf = binary.AppendUvarint(w.buf, v)
}

// Color appends c as three bytes
func (w *Writer) Color(c pixel.Color) {
	w.buf = append(w.buf, c.R, c.G, c.B)
}

// Raw appends b unframed
func (w *Writer) Raw(b []byte) {
	w.buf = append(w.buf, b...)
}

// Bytes returns the container
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reader walks a container built by Writer
type Reader struct {
	data   []byte
	offset int

	Width  int
	Height int
}

// NewReader checks the magic and reads the image dimensions
func NewReader(data []byte, magic string) (*Reader, error) {
	if len(data) < MagicSize || string(data[:MagicSize]) != magic {
		return nil, fmt.Errorf("%w: expected %q container", ErrUnsupportedFormat, magic)
	}
	r := &Reader{data: data, offset: MagicSize}
	w, err := r.Int()
	if err != nil {
		return nil, err
	}
	h, err := r.Int()
	if err != nil {
		return nil, err
	}
	n, err := pixel.PixelCount(w, h)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStream, err)
	}
	if n > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrCorruptStream, w, h, MaxPixels)
	}
	r.Width, r.Height = w, h
	return r, nil
}

// Uvarint reads the next uvarint
func (r *Reader) Uvarint() (uint64, error) {
	v, n := binary.Uvarint(r.data[r.offset:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: bad varint at offset %d", ErrCorruptStream, r.offset)
	}
	r.offset += n
	return v, nil
}

// Int reads a uvarint that must fit in a non-negative int
func (r *Reader) Int() (int, error) {
	v, err := r.Uvarint()
	if err != nil {
		return 0, err
	}
	if v > uint64(maxInt) {
		return 0, fmt.Errorf("%w: value %d out of range", ErrCorruptStream, v)
	}
	return int(v), nil
}

const maxInt = int(^uint(0) >> 1)

// Color reads three bytes
func (r *Reader) Color() (pixel.Color, error) {
	b, err := r.Raw(3)
	if err != nil {
		return pixel.Color{}, err
	}
	return pixel.Color{R: b[0], G: b[1], B: b[2]}, nil
}

// Raw reads n bytes
func (r *Reader) Raw(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.offset {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrCorruptStream, n, r.offset, len(r.data)-r.offset)
	}
	b := r.data[r.offset : r.offset+n]
	r.offset += n
	return b, nil
}

// Remaining returns the number of unread bytes
func (r *Reader) Remaining() int {
	return len(r.data) - r.offset
}
