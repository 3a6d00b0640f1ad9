package huffman

import (
	"fmt"
	"strings"

	"github.com/cocosip/go-pcx-codec/codec"
)

// Bitstream is a packed sequence of bits, most significant bit first
type Bitstream struct {
	data []byte
	n    int
}

// NewBitstream wraps packed bits. data must hold at least n bits.
func NewBitstream(data []byte, n int) (Bitstream, error) {
	if n < 0 || (n+7)/8 > len(data) {
		return Bitstream{}, fmt.Errorf("%w: %d bits do not fit in %d bytes", codec.ErrCorruptStream, n, len(data))
	}
	return Bitstream{data: data[:(n+7)/8], n: n}, nil
}

// ParseBits builds a bitstream from a string of '0' and '1'
func ParseBits(s string) (Bitstream, error) {
	if err := checkCode(s); err != nil {
		return Bitstream{}, err
	}
	var b Bitstream
	b.appendCode(s)
	return b, nil
}

// checkCode rejects characters other than '0' and '1'
func checkCode(code string) error {
	for i := 0; i < len(code); i++ {
		if code[i] != '0' && code[i] != '1' {
			return fmt.Errorf("%w: invalid bit %q", codec.ErrCorruptStream, code[i])
		}
	}
	return nil
}

func (b *Bitstream) appendBit(bit bool) {
	if b.n%8 == 0 {
		b.data = append(b.data, 0)
	}
	if bit {
		b.data[b.n/8] |= 0x80 >> uint(b.n%8)
	}
	b.n++
}

// appendCode appends a code checked by checkCode or built by assignCodes
func (b *Bitstream) appendCode(code string) {
	for i := 0; i < len(code); i++ {
		b.appendBit(code[i] == '1')
	}
}

// Len returns the number of bits
func (b Bitstream) Len() int {
	return b.n
}

// Bit returns bit i
func (b Bitstream) Bit(i int) bool {
	return b.data[i/8]&(0x80>>uint(i%8)) != 0
}

// Bytes returns the packed bits; unused low bits of the last byte are zero
func (b Bitstream) Bytes() []byte {
	return b.data
}

// String renders the bits as '0' and '1' characters
func (b Bitstream) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		if b.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
