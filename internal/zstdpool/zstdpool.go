// Package zstdpool keeps pooled zstd encoders and decoders for the codec
// entropy stage.
package zstdpool

import (
	"bytes"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// frameMagic starts every zstd frame
var frameMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

func newEncoderPool(level zstd.EncoderLevel) *sync.Pool {
	return &sync.Pool{
		New: func() any {
			enc, err := zstd.NewWriter(
				nil,
				zstd.WithEncoderConcurrency(1),
				zstd.WithEncoderLevel(level),
				zstd.WithLowerEncoderMem(true),
			)
			if err != nil {
				panic(err)
			}
			return enc
		},
	}
}

var encoderPools = [...]*sync.Pool{
	zstd.SpeedFastest:           newEncoderPool(zstd.SpeedFastest),
	zstd.SpeedDefault:           newEncoderPool(zstd.SpeedDefault),
	zstd.SpeedBetterCompression: newEncoderPool(zstd.SpeedBetterCompression),
	zstd.SpeedBestCompression:   newEncoderPool(zstd.SpeedBestCompression),
}

var decoderPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(
			nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true),
		)
		if err != nil {
			panic(err)
		}
		return dec
	},
}

// MaxLevel is the highest supported level
const MaxLevel = int(zstd.SpeedBestCompression)

// Compress wraps data in a zstd frame. Level 0 selects the default level,
// 1-4 map to fastest, default, better and best.
func Compress(data []byte, level int) []byte {
	if level <= 0 || level > MaxLevel {
		level = int(zstd.SpeedDefault)
	}
	pool := encoderPools[level]
	enc := pool.Get().(*zstd.Encoder)
	out := enc.EncodeAll(data, nil)
	pool.Put(enc)
	return out
}

// Decompress decodes a zstd frame produced by Compress
func Decompress(data []byte) ([]byte, error) {
	dec := decoderPool.Get().(*zstd.Decoder)
	out, err := dec.DecodeAll(data, nil)
	decoderPool.Put(dec)
	return out, err
}

// IsFrame reports whether data starts with the zstd frame magic
func IsFrame(data []byte) bool {
	return bytes.HasPrefix(data, frameMagic)
}
