package huffman

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/cocosip/go-pcx-codec/codec"
	"github.com/cocosip/go-pcx-codec/pixel"
	"github.com/google/go-cmp/cmp"
)

var (
	red   = pixel.Color{R: 255}
	green = pixel.Color{G: 255}
	blue  = pixel.Color{B: 255}
	white = pixel.Color{R: 255, G: 255, B: 255}
)

func newImage(t *testing.T, w, h int, pix ...pixel.Color) pixel.RGBBuffer {
	t.Helper()
	img, err := pixel.RGBFrom(w, h, pix)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestBuildTable(t *testing.T) {
	tests := []struct {
		name string
		pix  []pixel.Color
		want CodeTable
	}{
		{
			name: "skewed frequencies",
			pix:  []pixel.Color{red, green, red, blue, red, green},
			want: CodeTable{red: "0", blue: "10", green: "11"},
		},
		{
			name: "equal frequencies keep first-seen order",
			pix:  []pixel.Color{red, green, blue, white},
			want: CodeTable{red: "00", green: "01", blue: "10", white: "11"},
		},
		{
			name: "merged node queues behind equal frequency",
			pix:  []pixel.Color{red, green, blue, blue},
			want: CodeTable{blue: "0", red: "10", green: "11"},
		},
		{
			name: "single color",
			pix:  []pixel.Color{green, green, green},
			want: CodeTable{green: "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildTable(tt.pix)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("table mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	img := newImage(t, 3, 2, red, green, red, blue, red, green)

	bits, table, stats := Encode(img)

	if got, want := bits.String(), "011010011"; got != want {
		t.Errorf("bits = %s, want %s", got, want)
	}
	if len(table) != 3 {
		t.Errorf("table has %d codes, want 3", len(table))
	}
	want := codec.SizeStats{Image: 9.0 / 8, Table: 5.0/8 + 9}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestSingleColor(t *testing.T) {
	img, _ := pixel.NewRGBBuffer(4, 3)

	bits, table, _ := Encode(img)

	if bits.Len() != 12 {
		t.Fatalf("bit length = %d, want 12", bits.Len())
	}
	if bits.String() != "000000000000" {
		t.Errorf("bits = %s", bits.String())
	}
	if table[pixel.Color{}] != "0" {
		t.Errorf("code = %q, want \"0\"", table[pixel.Color{}])
	}

	got, err := Decode(bits, table, 4, 3)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff(img, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	gradient, _ := pixel.NewRGBBuffer(32, 24)
	for i := range gradient.Pix {
		// skewed histogram with many colors
		v := uint8(i % 37 * (i % 5))
		gradient.Pix[i] = pixel.Color{R: v, G: v / 2, B: 255 - v}
	}

	tests := []struct {
		name string
		img  pixel.RGBBuffer
	}{
		{"gradient", gradient},
		{"two colors", newImage(t, 2, 2, red, blue, blue, blue)},
		{"1x1", newImage(t, 1, 1, white)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bits, table, _ := Encode(tt.img)
			got, err := Decode(bits, table, tt.img.Width, tt.img.Height)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if diff := cmp.Diff(tt.img, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeRejectsCorruptStreams(t *testing.T) {
	table := CodeTable{red: "0", blue: "10", green: "11"}

	tests := []struct {
		name  string
		bits  string
		table CodeTable
	}{
		{"dangling bits", "0001", table},
		{"too few pixels", "000", table},
		{"too many pixels", "00000", table},
		{"unmatched prefix", "00011", CodeTable{red: "0", blue: "10"}},
		{"not prefix-free", "0000", CodeTable{red: "0", blue: "01"}},
		{"empty code", "0000", CodeTable{red: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bits, err := ParseBits(tt.bits)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := Decode(bits, tt.table, 2, 2); !errors.Is(err, codec.ErrCorruptStream) {
				t.Errorf("Decode error = %v, want ErrCorruptStream", err)
			}
		})
	}
}

func TestBitstream(t *testing.T) {
	b, err := ParseBits("1011000011")
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 10 {
		t.Errorf("Len = %d, want 10", b.Len())
	}
	if diff := cmp.Diff([]byte{0xb0, 0xc0}, b.Bytes()); diff != "" {
		t.Errorf("packed bytes mismatch (-want +got):\n%s", diff)
	}
	if b.String() != "1011000011" {
		t.Errorf("String = %s", b.String())
	}

	if _, err := ParseBits("01x"); !errors.Is(err, codec.ErrCorruptStream) {
		t.Errorf("ParseBits error = %v, want ErrCorruptStream", err)
	}
	if _, err := NewBitstream([]byte{0xff}, 9); !errors.Is(err, codec.ErrCorruptStream) {
		t.Errorf("NewBitstream error = %v, want ErrCorruptStream", err)
	}
}

func TestCodecContainer(t *testing.T) {
	img := newImage(t, 4, 2, red, red, green, blue, white, red, red, green)

	tests := []struct {
		name string
		opts codec.Options
	}{
		{"plain", nil},
		{"entropy", &Options{codec.BaseOptions{Entropy: true, Level: 1}}},
	}

	c := NewCodec()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := c.Encode(codec.EncodeParams{Image: img, Options: tt.opts})
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			res, err := c.Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if diff := cmp.Diff(img, res.Image); diff != "" {
				t.Errorf("container round trip mismatch (-want +got):\n%s", diff)
			}
			_, _, want := Encode(img)
			if res.Stats != want {
				t.Errorf("stats = %+v, want %+v", res.Stats, want)
			}
		})
	}
}

func TestMarshalIsDeterministic(t *testing.T) {
	img := newImage(t, 3, 2, red, green, blue, white, red, green)
	bits, table, _ := Encode(img)

	first, err := Marshal(bits, table, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, _ := Marshal(bits, table, 3, 2)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("Marshal output differs:\n%s", diff)
		}
	}
}

func TestUnmarshalRejectsTruncatedContainer(t *testing.T) {
	img := newImage(t, 2, 2, red, red, green, blue)
	bits, table, _ := Encode(img)
	data, err := Marshal(bits, table, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	for n := 0; n < len(data); n++ {
		if _, _, _, _, err := Unmarshal(data[:n]); err == nil {
			t.Errorf("Unmarshal of %d/%d bytes succeeded", n, len(data))
		}
	}
}

func TestDecodeRejectsOversizedDimensions(t *testing.T) {
	header := func(width, height uint64) []byte {
		b := []byte(Magic)
		b = binary.AppendUvarint(b, width)
		b = binary.AppendUvarint(b, height)
		// empty table and empty payload
		return append(b, 0, 0)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"pixel count overflows", header(3, 1<<62)},
		{"pixel count wraps to zero", header(1<<32, 1<<32)},
		{"above the pixel limit", header(1<<20, 1<<20)},
	}

	c := NewCodec()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.Decode(tt.data)
			if !errors.Is(err, codec.ErrCorruptStream) {
				t.Fatalf("Decode error = %v, want ErrCorruptStream", err)
			}
			if res != nil {
				t.Errorf("Decode returned %dx%d image", res.Image.Width, res.Image.Height)
			}
		})
	}

	// a short stream must not allocate the declared image
	bits, _ := ParseBits("0")
	if _, err := Decode(bits, CodeTable{red: "0"}, 1<<15, 1<<15); !errors.Is(err, codec.ErrCorruptStream) {
		t.Errorf("Decode error = %v, want ErrCorruptStream", err)
	}
}
