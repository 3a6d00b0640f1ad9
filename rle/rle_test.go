package rle

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
)

func image(t *testing.T, w, h int, pix ...pixel.Color) pixel.RGBBuffer {
	t.Helper()
	img, err := pixel.RGBFrom(w, h, pix)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func distinct(t *testing.T, w, h int) pixel.RGBBuffer {
	t.Helper()
	img, _ := pixel.NewRGBBuffer(w, h)
	for i := range img.Pix {
		img.Pix[i] = pixel.Color{R: uint8(i), G: uint8(i >> 8), B: 7}
	}
	return img
}

func TestEncodeRuns(t *testing.T) {
	// 3x2 image: runs cross the scanline boundary
	img := image(t, 3, 2, red, red, green, green, green, blue)

	s, palette, stats := Encode(img)

	wantStream := Stream{{2, 0}, {3, 1}, {1, 2}}
	if diff := cmp.Diff(wantStream, s); diff != "" {
		t.Errorf("stream mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(pixel.Palette{red, green, blue}, palette); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
	// max run 3 -> 2 bits, 3 pairs -> 2*2*3/8 bytes
	want := codec.SizeStats{Image: 1.5, Table: 9}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestRoundTrip(t *testing.T) {
	single, _ := pixel.NewRGBBuffer(5, 4)
	for i := range single.Pix {
		single.Pix[i] = green
	}

	tests := []struct {
		name string
		img  pixel.RGBBuffer
	}{
		{"single color", single},
		{"all distinct", distinct(t, 16, 20)},
		{"mixed", image(t, 4, 2, red, red, blue, red, green, green, green, red)},
		{"1x1", image(t, 1, 1, blue)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, palette, _ := Encode(tt.img)
			if s.Len() != len(tt.img.Pix) {
				t.Fatalf("stream covers %d pixels, want %d", s.Len(), len(tt.img.Pix))
			}
			got, err := Decode(s, palette, tt.img.Width, tt.img.Height)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if diff := cmp.Diff(tt.img, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSingleColorIsOneRun(t *testing.T) {
	img, _ := pixel.NewRGBBuffer(8, 8)
	s, palette, stats := Encode(img)
	if len(s) != 1 || s[0].Length != 64 || len(palette) != 1 {
		t.Fatalf("stream = %v, palette = %v", s, palette)
	}
	// 64 needs 7 bits: 7*2*1/8
	if stats.Image != 1.75 || stats.Table != 3 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestDecodeRejectsCorruptStreams(t *testing.T) {
	palette := pixel.Palette{red, green}

	tests := []struct {
		name string
		s    Stream
	}{
		{"index out of range", Stream{{4, 2}}},
		{"zero length run", Stream{{0, 0}, {4, 1}}},
		{"too many pixels", Stream{{3, 0}, {2, 1}}},
		{"too few pixels", Stream{{3, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.s, palette, 2, 2); !errors.Is(err, codec.ErrCorruptStream) {
				t.Errorf("Decode error = %v, want ErrCorruptStream", err)
			}
		})
	}
}

func TestCodecContainer(t *testing.T) {
	img := distinct(t, 9, 7)
	for i := 0; i < 20; i++ {
		img.Pix[i] = red
	}

	tests := []struct {
		name string
		opts codec.Options
	}{
		{"plain", nil},
		{"entropy default", &Options{codec.BaseOptions{Entropy: true}}},
		{"entropy best", &Options{codec.BaseOptions{Entropy: true, Level: 4}}},
	}

	c := NewCodec()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := c.Encode(codec.EncodeParams{Image: img, Options: tt.opts})
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			t.Logf("container size: %d bytes", len(data))

			res, err := c.Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if diff := cmp.Diff(img, res.Image); diff != "" {
				t.Errorf("container round trip mismatch (-want +got):\n%s", diff)
			}

			_, palette, want := Encode(img)
			if res.Stats != want {
				t.Errorf("stats = %+v, want %+v", res.Stats, want)
			}
			if len(palette) == 0 {
				t.Error("empty palette")
			}
		})
	}

	if _, err := c.Encode(codec.EncodeParams{Image: img, Options: &Options{codec.BaseOptions{Level: 9}}}); !errors.Is(err, codec.ErrInvalidParameter) {
		t.Errorf("level 9 error = %v, want ErrInvalidParameter", err)
	}
}

func TestUnmarshalRejectsTruncatedContainer(t *testing.T) {
	img := image(t, 2, 2, red, red, green, blue)
	s, palette, _ := Encode(img)
	data := Marshal(s, palette, 2, 2)

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
	if _, err := Decode(Stream{{1, 0}}, pixel.Palette{red}, 1<<15, 1<<15); !errors.Is(err, codec.ErrCorruptStream) {
		t.Errorf("Decode error = %v, want ErrCorruptStream", err)
	}
}
