package huffman

import (
	"fmt"
	"sort"

	"github.com/cocosip/go-pcx-codec/codec"
	"github.com/cocosip/go-pcx-codec/pixel"
)

// Magic starts every Huffman container
const Magic = "PHUF"

var _ codec.Codec = (*Codec)(nil)

// Codec implements the codec.Codec interface for Huffman coding
type Codec struct{}

// NewCodec creates a new Huffman codec
func NewCodec() *Codec {
	return &Codec{}
}

// Options contains encoding options for the Huffman codec
type Options struct {
	codec.BaseOptions
}

// Validate validates the options
func (o *Options) Validate() error {
	return o.BaseOptions.Validate()
}

type entry struct {
	color pixel.Color
	code  string
}

// sortedEntries orders the table by code length, then code
func sortedEntries(table CodeTable) []entry {
	entries := make([]entry, 0, len(table))
	for c, code := range table {
		entries = append(entries, entry{c, code})
	}
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].code) != len(entries[j].code) {
			return len(entries[i].code) < len(entries[j].code)
		}
		return entries[i].code < entries[j].code
	})
	return entries
}

// Marshal serializes a bitstream and its code table into a container
func Marshal(bits Bitstream, table CodeTable, width, height int) ([]byte, error) {
	w := codec.NewWriter(Magic, width, height)
	w.Uvarint(uint64(len(table)))
	for _, e := range sortedEntries(table) {
		code, err := ParseBits(e.code)
		if err != nil {
			return nil, err
		}
		w.Color(e.color)
		w.Uvarint(uint64(code.Len()))
		w.Raw(code.Bytes())
	}
	w.Uvarint(uint64(bits.Len()))
	w.Raw(bits.Bytes())
	return w.Bytes(), nil
}

func packedSize(bits int) int {
	n := bits / 8
	if bits%8 != 0 {
		n++
	}
	return n
}

// Unmarshal parses a container produced by Marshal
func Unmarshal(data []byte) (Bitstream, CodeTable, int, int, error) {
	r, err := codec.NewReader(data, Magic)
	if err != nil {
		return Bitstream{}, nil, 0, 0, err
	}

	n, err := r.Int()
	if err != nil {
		return Bitstream{}, nil, 0, 0, err
	}
	// color, code length and at least one code byte per entry
	if n > r.Remaining()/5 {
		return Bitstream{}, nil, 0, 0, fmt.Errorf("%w: table of %d codes exceeds container", codec.ErrCorruptStream, n)
	}
	table := make(CodeTable, n)
	for i := 0; i < n; i++ {
		c, err := r.Color()
		if err != nil {
			return Bitstream{}, nil, 0, 0, err
		}
		codeLen, err := r.Int()
		if err != nil {
			return Bitstream{}, nil, 0, 0, err
		}
		if codeLen == 0 {
			return Bitstream{}, nil, 0, 0, fmt.Errorf("%w: empty code for %v", codec.ErrCorruptStream, c)
		}
		raw, err := r.Raw(packedSize(codeLen))
		if err != nil {
			return Bitstream{}, nil, 0, 0, err
		}
		code, err := NewBitstream(raw, codeLen)
		if err != nil {
			return Bitstream{}, nil, 0, 0, err
		}
		if _, dup := table[c]; dup {
			return Bitstream{}, nil, 0, 0, fmt.Errorf("%w: duplicate color %v", codec.ErrCorruptStream, c)
		}
		table[c] = code.String()
	}

	nbits, err := r.Int()
	if err != nil {
		return Bitstream{}, nil, 0, 0, err
	}
	raw, err := r.Raw(packedSize(nbits))
	if err != nil {
		return Bitstream{}, nil, 0, 0, err
	}
	bits, err := NewBitstream(raw, nbits)
	if err != nil {
		return Bitstream{}, nil, 0, 0, err
	}

	return bits, table, r.Width, r.Height, nil
}

// Encode encodes an image into a Huffman container
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	if err := params.Image.Validate(); err != nil {
		return nil, err
	}
	bits, table, _ := Encode(params.Image)
	data, err := Marshal(bits, table, params.Image.Width, params.Image.Height)
	if err != nil {
		return nil, err
	}
	return codec.Seal(data, params.Options)
}

// Decode decodes a Huffman container
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	raw, err := codec.Unwrap(data)
	if err != nil {
		return nil, err
	}
	bits, table, width, height, err := Unmarshal(raw)
	if err != nil {
		return nil, err
	}
	img, err := Decode(bits, table, width, height)
	if err != nil {
		return nil, err
	}
	return &codec.DecodeResult{Image: img, Stats: Stats(bits, table)}, nil
}

// Magic returns the container tag
func (c *Codec) Magic() string {
	return Magic
}

// Name returns the human-readable name
func (c *Codec) Name() string {
	return "huffman"
}

// Register registers this codec with the global registry
func init() {
	codec.Register(NewCodec())
}
