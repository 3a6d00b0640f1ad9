package restore

import (
	"errors"
	"math"
	"testing"

	"github.com/cocosip/go-pcx-codec/noise"
	"github.com/cocosip/go-pcx-codec/pixel"
	"github.com/cocosip/go-pcx-codec/spatial"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestGeometricMean(t *testing.T) {
	g, _ := pixel.GrayFrom(3, 3, []float64{2, 2, 2, 2, 2, 2, 2, 2, 2})
	got, err := GeometricMean(g)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.Pix[4]-2) > 1e-9 {
		t.Errorf("center = %v, want 2", got.Pix[4])
	}
	// border windows include zero padding so the product collapses
	if got.Pix[0] != 0 {
		t.Errorf("corner = %v, want 0", got.Pix[0])
	}
}

func TestContraharmonic(t *testing.T) {
	g, _ := pixel.GrayFrom(3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})

	tests := []struct {
		name string
		q    float64
		want float64 // value at the center
	}{
		// q=0 is the arithmetic mean of the non-zero neighbors
		{"q=0", 0, 5},
		// q=1: sum(x^2)/sum(x) = 285/45
		{"q=1", 1, 285.0 / 45.0},
		// q=-1 is the harmonic mean
		{"q=-1", -1, 9 / (1 + 1.0/2 + 1.0/3 + 1.0/4 + 1.0/5 + 1.0/6 + 1.0/7 + 1.0/8 + 1.0/9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Contraharmonic(g, tt.q)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got.Pix[4]-tt.want) > 1e-9 {
				t.Errorf("center = %v, want %v", got.Pix[4], tt.want)
			}
		})
	}
}

func TestContraharmonicSkipsZeros(t *testing.T) {
	// corner window of a 1x1 image is eight zeros plus the pixel itself
	g, _ := pixel.GrayFrom(1, 1, []float64{10})
	got, err := Contraharmonic(g, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.Pix[0]-10) > 1e-9 {
		t.Errorf("got %v, want 10", got.Pix[0])
	}

	black, _ := pixel.GrayFrom(2, 2, []float64{0, 0, 0, 0})
	got, err = Contraharmonic(black, -2)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{0, 0, 0, 0}, got.Pix); diff != "" {
		t.Errorf("all-zero window mismatch (-want +got):\n%s", diff)
	}

	if _, err := Contraharmonic(g, math.NaN()); !errors.Is(err, pixel.ErrInvalidParameter) {
		t.Errorf("NaN order error = %v, want ErrInvalidParameter", err)
	}
}

func TestOrderStatisticIsMedian(t *testing.T) {
	g, _ := pixel.NewGrayBuffer(6, 6)
	for i := range g.Pix {
		g.Pix[i] = float64(100 + i%7)
	}
	noisy, err := noise.SaltAndPepper(g, 0.1, noise.NewSource(3))
	if err != nil {
		t.Fatal(err)
	}

	got, err := OrderStatistic(noisy)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := spatial.Median(noisy, 1)
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("OrderStatistic != Median(1) (-want +got):\n%s", diff)
	}
}
