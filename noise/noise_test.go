package noise

import (
	"errors"
	"math"
	"testing"

	"github.com/cocosip/go-pcx-codec/pixel"
	"github.com/google/go-cmp/cmp"
)

// fixedSource replays Float64 values and returns constants for the other draws
type fixedSource struct {
	values []float64
	next   int
	norm   float64
	exp    float64
}

func (s *fixedSource) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *fixedSource) NormFloat64() float64 { return s.norm }
func (s *fixedSource) ExpFloat64() float64  { return s.exp }

func flat(t *testing.T, w, h int, v float64) pixel.GrayBuffer {
	t.Helper()
	g, err := pixel.NewGrayBuffer(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

func TestSaltAndPepperThresholds(t *testing.T) {
	g := flat(t, 4, 1, 100)
	src := &fixedSource{values: []float64{0.05, 0.15, 0.2, 0.9}}

	got, err := SaltAndPepper(g, 0.1, src)
	if err != nil {
		t.Fatal(err)
	}
	// r<p salt, r<2p pepper, otherwise unchanged
	if diff := cmp.Diff([]float64{255, 0, 100, 100}, got.Pix); diff != "" {
		t.Errorf("SaltAndPepper mismatch (-want +got):\n%s", diff)
	}
}

func TestSaltAndPepperRejectsProbability(t *testing.T) {
	g := flat(t, 2, 2, 0)
	for _, p := range []float64{-0.1, 0.51, math.NaN()} {
		if _, err := SaltAndPepper(g, p, NewSource(1)); !errors.Is(err, pixel.ErrInvalidParameter) {
			t.Errorf("SaltAndPepper(p=%v) error = %v, want ErrInvalidParameter", p, err)
		}
	}
}

func TestGaussianAndErlangUseConfig(t *testing.T) {
	g := flat(t, 3, 2, 50)
	src := &fixedSource{values: []float64{0}, norm: -1.5, exp: 0.25}

	gauss, err := Gaussian(g, DefaultGaussianConfig, src)
	if err != nil {
		t.Fatal(err)
	}
	// 50 + 35 + 10*(-1.5)
	for i, v := range gauss.Pix {
		if v != 70 {
			t.Errorf("gaussian[%d] = %v, want 70", i, v)
		}
	}

	erlang, err := Erlang(g, DefaultErlangConfig, src)
	if err != nil {
		t.Fatal(err)
	}
	// 50 + 10*(0.25+0.25)
	for i, v := range erlang.Pix {
		if v != 55 {
			t.Errorf("erlang[%d] = %v, want 55", i, v)
		}
	}
}

func TestSeededSourceIsReproducible(t *testing.T) {
	g := flat(t, 16, 16, 128)

	run := func() []pixel.GrayBuffer {
		src := NewSource(42)
		sp, err := SaltAndPepper(g, 0.2, src)
		if err != nil {
			t.Fatal(err)
		}
		ga, err := Gaussian(g, DefaultGaussianConfig, src)
		if err != nil {
			t.Fatal(err)
		}
		er, err := Erlang(g, DefaultErlangConfig, src)
		if err != nil {
			t.Fatal(err)
		}
		return []pixel.GrayBuffer{sp, ga, er}
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("seeded runs differ (-first +second):\n%s", diff)
	}
}

func TestErlangNoiseIsNonNegative(t *testing.T) {
	g := flat(t, 32, 32, 0)
	out, err := Erlang(g, DefaultErlangConfig, NewSource(7))
	if err != nil {
		t.Fatal(err)
	}
	sum := 0.0
	for _, v := range out.Pix {
		if v < 0 {
			t.Fatalf("erlang draw %v is negative", v)
		}
		sum += v
	}
	mean := sum / float64(len(out.Pix))
	t.Logf("erlang mean over %d pixels: %.2f", len(out.Pix), mean)
	// expected mean is shape*scale = 20
	if mean < 15 || mean > 25 {
		t.Errorf("erlang mean = %.2f, want about 20", mean)
	}
}

func TestInvalidConfigs(t *testing.T) {
	g := flat(t, 2, 2, 0)
	if _, err := Gaussian(g, GaussianConfig{Mean: 0, StdDev: -1}, NewSource(1)); !errors.Is(err, pixel.ErrInvalidParameter) {
		t.Errorf("Gaussian negative std-dev error = %v", err)
	}
	if _, err := Erlang(g, ErlangConfig{Shape: 0, Scale: 1}, NewSource(1)); !errors.Is(err, pixel.ErrInvalidParameter) {
		t.Errorf("Erlang zero shape error = %v", err)
	}
	if _, err := Erlang(g, ErlangConfig{Shape: 2, Scale: 0}, NewSource(1)); !errors.Is(err, pixel.ErrInvalidParameter) {
		t.Errorf("Erlang zero scale error = %v", err)
	}
}

func TestNilSourceIsRejected(t *testing.T) {
	g := flat(t, 2, 2, 10)

	tests := []struct {
		name string
		run  func() (pixel.GrayBuffer, error)
	}{
		{"salt and pepper", func() (pixel.GrayBuffer, error) { return SaltAndPepper(g, 0.1, nil) }},
		{"gaussian", func() (pixel.GrayBuffer, error) { return Gaussian(g, DefaultGaussianConfig, nil) }},
		{"erlang", func() (pixel.GrayBuffer, error) { return Erlang(g, DefaultErlangConfig, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.run(); !errors.Is(err, pixel.ErrInvalidParameter) {
				t.Errorf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}
