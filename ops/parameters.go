package ops

import (
	"fmt"
	"math"

	dicomcodec "github.com/cocosip/go-dicom/pkg/imaging/codec"

	"github.com/cocosip/go-pcx-codec/noise"
	"github.com/cocosip/go-pcx-codec/pixel"
	"github.com/cocosip/go-pcx-codec/point"
	"github.com/cocosip/go-pcx-codec/restore"
	"github.com/cocosip/go-pcx-codec/spatial"
)

// Ensure every parameter struct implements dicomcodec.Parameters and Operation
var (
	_ dicomcodec.Parameters = (*NegativeParameters)(nil)
	_ dicomcodec.Parameters = (*ThresholdParameters)(nil)
	_ dicomcodec.Parameters = (*GammaParameters)(nil)
	_ dicomcodec.Parameters = (*AverageParameters)(nil)
	_ dicomcodec.Parameters = (*MedianParameters)(nil)
	_ dicomcodec.Parameters = (*HighpassParameters)(nil)
	_ dicomcodec.Parameters = (*UnsharpParameters)(nil)
	_ dicomcodec.Parameters = (*HighboostParameters)(nil)
	_ dicomcodec.Parameters = (*GradientParameters)(nil)
	_ dicomcodec.Parameters = (*SaltAndPepperParameters)(nil)
	_ dicomcodec.Parameters = (*GaussianParameters)(nil)
	_ dicomcodec.Parameters = (*ErlangParameters)(nil)
	_ dicomcodec.Parameters = (*GeometricMeanParameters)(nil)
	_ dicomcodec.Parameters = (*ContraharmonicParameters)(nil)
	_ dicomcodec.Parameters = (*OrderStatisticParameters)(nil)

	_ Operation = (*NegativeParameters)(nil)
	_ Operation = (*SaltAndPepperParameters)(nil)
)

// custom stores parameters that have no typed field
type custom struct {
	params map[string]interface{}
}

func newCustom() custom {
	return custom{params: make(map[string]interface{})}
}

func (c *custom) get(name string) interface{} {
	return c.params[name]
}

func (c *custom) set(name string, value interface{}) {
	if c.params == nil {
		c.params = make(map[string]interface{})
	}
	c.params[name] = value
}

func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
	}
	return 0, false
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func toSeed(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case int:
		return uint64(v), true
	case int64:
		return uint64(v), true
	}
	return 0, false
}

// NegativeParameters inverts intensities. It has no parameters.
type NegativeParameters struct {
	custom
}

// NewNegativeParameters creates negative parameters
func NewNegativeParameters() *NegativeParameters {
	return &NegativeParameters{custom: newCustom()}
}

func (p *NegativeParameters) Kind() Kind { return Negative }
func (p *NegativeParameters) GetParameter(name string) interface{} { return p.get(name) }
func (p *NegativeParameters) SetParameter(name string, value interface{}) { p.set(name, value) }
func (p *NegativeParameters) Validate() error { return nil }

// Apply runs point.Negative
func (p *NegativeParameters) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	if err := g.Validate(); err != nil {
		return pixel.GrayBuffer{}, err
	}
	return point.Negative(g), nil
}

// ThresholdParameters binarizes at Threshold
type ThresholdParameters struct {
	// Threshold in [0,255]; pixels strictly above it become 255
	Threshold int

	custom
}

// NewThresholdParameters creates threshold parameters with threshold 127
func NewThresholdParameters() *ThresholdParameters {
	return &ThresholdParameters{Threshold: 127, custom: newCustom()}
}

func (p *ThresholdParameters) Kind() Kind { return Threshold }

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *ThresholdParameters) GetParameter(name string) interface{} {
	if name == "threshold" {
		return p.Threshold
	}
	return p.get(name)
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *ThresholdParameters) SetParameter(name string, value interface{}) {
	if name == "threshold" {
		if v, ok := toInt(value); ok {
			p.Threshold = v
		}
		return
	}
	p.set(name, value)
}

// Validate checks the threshold range
func (p *ThresholdParameters) Validate() error {
	if p.Threshold < 0 || p.Threshold > 255 {
		return fmt.Errorf("%w: threshold %d outside [0,255]", pixel.ErrInvalidParameter, p.Threshold)
	}
	return nil
}

// WithThreshold sets the threshold and returns the parameters for chaining
func (p *ThresholdParameters) WithThreshold(t int) *ThresholdParameters {
	p.Threshold = t
	return p
}

// Apply runs point.Threshold
func (p *ThresholdParameters) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	if err := p.Validate(); err != nil {
		return pixel.GrayBuffer{}, err
	}
	return point.Threshold(g, p.Threshold)
}

// GammaParameters applies a power law
type GammaParameters struct {
	Gamma float64

	custom
}

// NewGammaParameters creates gamma parameters with gamma 1 (identity)
func NewGammaParameters() *GammaParameters {
	return &GammaParameters{Gamma: 1, custom: newCustom()}
}

func (p *GammaParameters) Kind() Kind { return Gamma }

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *GammaParameters) GetParameter(name string) interface{} {
	if name == "gamma" {
		return p.Gamma
	}
	return p.get(name)
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *GammaParameters) SetParameter(name string, value interface{}) {
	if name == "gamma" {
		if v, ok := toFloat(value); ok {
			p.Gamma = v
		}
		return
	}
	p.set(name, value)
}

// Validate requires a positive finite gamma
func (p *GammaParameters) Validate() error {
	if math.IsNaN(p.Gamma) || math.IsInf(p.Gamma, 0) || p.Gamma <= 0 {
		return fmt.Errorf("%w: gamma %v must be positive", pixel.ErrInvalidParameter, p.Gamma)
	}
	return nil
}

// WithGamma sets gamma and returns the parameters for chaining
func (p *GammaParameters) WithGamma(gamma float64) *GammaParameters {
	p.Gamma = gamma
	return p
}

// Apply runs point.Gamma
func (p *GammaParameters) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	if err := p.Validate(); err != nil {
		return pixel.GrayBuffer{}, err
	}
	return point.Gamma(g, p.Gamma)
}

func getRadius(radius int, c *custom, name string) interface{} {
	if name == "radius" {
		return radius
	}
	return c.get(name)
}

func setRadius(radius *int, c *custom, name string, value interface{}) {
	if name == "radius" {
		if v, ok := toInt(value); ok {
			*radius = v
		}
		return
	}
	c.set(name, value)
}

func validateRadius(radius int) error {
	if radius < 1 {
		return fmt.Errorf("%w: radius %d must be at least 1", pixel.ErrInvalidParameter, radius)
	}
	return nil
}

// AverageParameters configures the box filter
type AverageParameters struct {
	// Radius of the (2*Radius+1)^2 window
	Radius int

	custom
}

// NewAverageParameters creates average parameters with radius 1
func NewAverageParameters() *AverageParameters {
	return &AverageParameters{Radius: 1, custom: newCustom()}
}

func (p *AverageParameters) Kind() Kind { return Average }
func (p *AverageParameters) GetParameter(name string) interface{} { return getRadius(p.Radius, &p.custom, name) }
func (p *AverageParameters) SetParameter(name string, value interface{}) {
	setRadius(&p.Radius, &p.custom, name, value)
}
func (p *AverageParameters) Validate() error { return validateRadius(p.Radius) }

// WithRadius sets the radius and returns the parameters for chaining
func (p *AverageParameters) WithRadius(radius int) *AverageParameters {
	p.Radius = radius
	return p
}

// Apply runs spatial.Average
func (p *AverageParameters) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	return spatial.Average(g, p.Radius)
}

// MedianParameters configures the median filter
type MedianParameters struct {
	// Radius of the (2*Radius+1)^2 window
	Radius int

	custom
}

// NewMedianParameters creates median parameters with radius 1
func NewMedianParameters() *MedianParameters {
	return &MedianParameters{Radius: 1, custom: newCustom()}
}

func (p *MedianParameters) Kind() Kind { return Median }
func (p *MedianParameters) GetParameter(name string) interface{} { return getRadius(p.Radius, &p.custom, name) }
func (p *MedianParameters) SetParameter(name string, value interface{}) {
	setRadius(&p.Radius, &p.custom, name, value)
}
func (p *MedianParameters) Validate() error { return validateRadius(p.Radius) }

// WithRadius sets the radius and returns the parameters for chaining
func (p *MedianParameters) WithRadius(radius int) *MedianParameters {
	p.Radius = radius
	return p
}

// Apply runs spatial.Median
func (p *MedianParameters) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	return spatial.Median(g, p.Radius)
}

// HighpassParameters selects the Laplacian mask
type HighpassParameters struct {
	Kernel spatial.Kernel

	custom
}

// NewHighpassParameters creates highpass parameters with the plain Laplacian
func NewHighpassParameters() *HighpassParameters {
	return &HighpassParameters{Kernel: spatial.KernelLaplacian, custom: newCustom()}
}

func (p *HighpassParameters) Kind() Kind { return Highpass }

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *HighpassParameters) GetParameter(name string) interface{} {
	if name == "kernel" {
		return int(p.Kernel)
	}
	return p.get(name)
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *HighpassParameters) SetParameter(name string, value interface{}) {
	if name == "kernel" {
		if k, ok := value.(spatial.Kernel); ok {
			p.Kernel = k
		} else if v, ok := toInt(value); ok {
			p.Kernel = spatial.Kernel(v)
		}
		return
	}
	p.set(name, value)
}

// Validate checks that the kernel is one of the four masks
func (p *HighpassParameters) Validate() error {
	if _, ok := p.Kernel.Mask(); !ok {
		return fmt.Errorf("%w: highpass kernel %d", pixel.ErrInvalidParameter, int(p.Kernel))
	}
	return nil
}

// WithKernel sets the kernel and returns the parameters for chaining
func (p *HighpassParameters) WithKernel(k spatial.Kernel) *HighpassParameters {
	p.Kernel = k
	return p
}

// Apply runs spatial.Highpass
func (p *HighpassParameters) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	return spatial.Highpass(g, p.Kernel)
}

// UnsharpParameters sharpens with an unsharp mask. It has no parameters.
type UnsharpParameters struct {
	custom
}

// NewUnsharpParameters creates unsharp parameters
func NewUnsharpParameters() *UnsharpParameters {
	return &UnsharpParameters{custom: newCustom()}
}

func (p *UnsharpParameters) Kind() Kind { return Unsharp }
func (p *UnsharpParameters) GetParameter(name string) interface{} { return p.get(name) }
func (p *UnsharpParameters) SetParameter(name string, value interface{}) { p.set(name, value) }
func (p *UnsharpParameters) Validate() error { return nil }

// Apply runs spatial.Unsharp
func (p *UnsharpParameters) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	return spatial.Unsharp(g)
}

// HighboostParameters configures highboost filtering
type HighboostParameters struct {
	// A is the boost factor, at least 1
	A float64

	custom
}

// NewHighboostParameters creates highboost parameters with A = 1
func NewHighboostParameters() *HighboostParameters {
	return &HighboostParameters{A: 1, custom: newCustom()}
}

func (p *HighboostParameters) Kind() Kind { return Highboost }

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *HighboostParameters) GetParameter(name string) interface{} {
	if name == "a" {
		return p.A
	}
	return p.get(name)
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *HighboostParameters) SetParameter(name string, value interface{}) {
	if name == "a" {
		if v, ok := toFloat(value); ok {
			p.A = v
		}
		return
	}
	p.set(name, value)
}

// Validate requires A >= 1
func (p *HighboostParameters) Validate() error {
	if math.IsNaN(p.A) || math.IsInf(p.A, 0) || p.A < 1 {
		return fmt.Errorf("%w: highboost factor %v must be at least 1", pixel.ErrInvalidParameter, p.A)
	}
	return nil
}

// WithA sets the boost factor and returns the parameters for chaining
func (p *HighboostParameters) WithA(a float64) *HighboostParameters {
	p.A = a
	return p
}

// Apply runs spatial.Highboost
func (p *HighboostParameters) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	return spatial.Highboost(g, p.A)
}

// GradientParameters selects the Sobel component
type GradientParameters struct {
	Direction spatial.Direction

	custom
}

// NewGradientParameters creates gradient parameters for the combined magnitude
func NewGradientParameters() *GradientParameters {
	return &GradientParameters{Direction: spatial.Combined, custom: newCustom()}
}

func (p *GradientParameters) Kind() Kind { return Gradient }

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *GradientParameters) GetParameter(name string) interface{} {
	if name == "direction" {
		return int(p.Direction)
	}
	return p.get(name)
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *GradientParameters) SetParameter(name string, value interface{}) {
	if name == "direction" {
		if d, ok := value.(spatial.Direction); ok {
			p.Direction = d
		} else if v, ok := toInt(value); ok {
			p.Direction = spatial.Direction(v)
		}
		return
	}
	p.set(name, value)
}

// Validate checks the direction
func (p *GradientParameters) Validate() error {
	switch p.Direction {
	case spatial.Combined, spatial.DirectionX, spatial.DirectionY:
		return nil
	}
	return fmt.Errorf("%w: gradient direction %d", pixel.ErrInvalidParameter, int(p.Direction))
}

// WithDirection sets the direction and returns the parameters for chaining
func (p *GradientParameters) WithDirection(d spatial.Direction) *GradientParameters {
	p.Direction = d
	return p
}

// Apply runs spatial.Gradient
func (p *GradientParameters) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	return spatial.Gradient(g, p.Direction)
}

// random holds the source shared by the noise parameters. A nil Source is
// replaced on every Apply by a fresh source seeded with Seed.
type random struct {
	Seed   uint64
	Source noise.Source
}

func (r *random) source() noise.Source {
	if r.Source != nil {
		return r.Source
	}
	return noise.NewSource(r.Seed)
}

// SaltAndPepperParameters configures impulse noise
type SaltAndPepperParameters struct {
	// Probability of each of salt and pepper, in [0,0.5]
	Probability float64

	random
	custom
}

// NewSaltAndPepperParameters creates salt and pepper parameters with p = 0.05
func NewSaltAndPepperParameters() *SaltAndPepperParameters {
	return &SaltAndPepperParameters{Probability: 0.05, custom: newCustom()}
}

func (p *SaltAndPepperParameters) Kind() Kind { return SaltAndPepper }

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *SaltAndPepperParameters) GetParameter(name string) interface{} {
	switch name {
	case "probability":
		return p.Probability
	case "seed":
		return p.Seed
	default:
		return p.get(name)
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *SaltAndPepperParameters) SetParameter(name string, value interface{}) {
	switch name {
	case "probability":
		if v, ok := toFloat(value); ok {
			p.Probability = v
		}
	case "seed":
		if v, ok := toSeed(value); ok {
			p.Seed = v
		}
	default:
		p.set(name, value)
	}
}

// Validate checks the probability range
func (p *SaltAndPepperParameters) Validate() error {
	if math.IsNaN(p.Probability) || p.Probability < 0 || p.Probability > 0.5 {
		return fmt.Errorf("%w: salt and pepper probability %v outside [0,0.5]", pixel.ErrInvalidParameter, p.Probability)
	}
	return nil
}

// WithProbability sets the probability and returns the parameters for chaining
func (p *SaltAndPepperParameters) WithProbability(prob float64) *SaltAndPepperParameters {
	p.Probability = prob
	return p
}

// WithSource sets the random source and returns the parameters for chaining
func (p *SaltAndPepperParameters) WithSource(src noise.Source) *SaltAndPepperParameters {
	p.Source = src
	return p
}

// Apply runs noise.SaltAndPepper
func (p *SaltAndPepperParameters) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	if err := g.Validate(); err != nil {
		return pixel.GrayBuffer{}, err
	}
	return noise.SaltAndPepper(g, p.Probability, p.source())
}

// GaussianParameters configures additive Gaussian noise
type GaussianParameters struct {
	noise.GaussianConfig

	random
	custom
}

// NewGaussianParameters creates Gaussian parameters with mean 35 and standard deviation 10
func NewGaussianParameters() *GaussianParameters {
	return &GaussianParameters{GaussianConfig: noise.DefaultGaussianConfig, custom: newCustom()}
}

func (p *GaussianParameters) Kind() Kind { return Gaussian }

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *GaussianParameters) GetParameter(name string) interface{} {
	switch name {
	case "mean":
		return p.Mean
	case "stddev":
		return p.StdDev
	case "seed":
		return p.Seed
	default:
		return p.get(name)
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *GaussianParameters) SetParameter(name string, value interface{}) {
	switch name {
	case "mean":
		if v, ok := toFloat(value); ok {
			p.Mean = v
		}
	case "stddev":
		if v, ok := toFloat(value); ok {
			p.StdDev = v
		}
	case "seed":
		if v, ok := toSeed(value); ok {
			p.Seed = v
		}
	default:
		p.set(name, value)
	}
}

// Validate checks the noise configuration
func (p *GaussianParameters) Validate() error {
	return p.GaussianConfig.Validate()
}

// WithSource sets the random source and returns the parameters for chaining
func (p *GaussianParameters) WithSource(src noise.Source) *GaussianParameters {
	p.Source = src
	return p
}

// Apply runs noise.Gaussian
func (p *GaussianParameters) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	if err := g.Validate(); err != nil {
		return pixel.GrayBuffer{}, err
	}
	return noise.Gaussian(g, p.GaussianConfig, p.source())
}

// ErlangParameters configures additive Erlang noise
type ErlangParameters struct {
	noise.ErlangConfig

	random
	custom
}

// NewErlangParameters creates Erlang parameters with shape 2 and scale 10
func NewErlangParameters() *ErlangParameters {
	return &ErlangParameters{ErlangConfig: noise.DefaultErlangConfig, custom: newCustom()}
}

func (p *ErlangParameters) Kind() Kind { return Erlang }

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *ErlangParameters) GetParameter(name string) interface{} {
	switch name {
	case "shape":
		return p.Shape
	case "scale":
		return p.Scale
	case "seed":
		return p.Seed
	default:
		return p.get(name)
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *ErlangParameters) SetParameter(name string, value interface{}) {
	switch name {
	case "shape":
		if v, ok := toInt(value); ok {
			p.Shape = v
		}
	case "scale":
		if v, ok := toFloat(value); ok {
			p.Scale = v
		}
	case "seed":
		if v, ok := toSeed(value); ok {
			p.Seed = v
		}
	default:
		p.set(name, value)
	}
}

// Validate checks the noise configuration
func (p *ErlangParameters) Validate() error {
	return p.ErlangConfig.Validate()
}

// WithSource sets the random source and returns the parameters for chaining
func (p *ErlangParameters) WithSource(src noise.Source) *ErlangParameters {
	p.Source = src
	return p
}

// Apply runs noise.Erlang
func (p *ErlangParameters) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	if err := g.Validate(); err != nil {
		return pixel.GrayBuffer{}, err
	}
	return noise.Erlang(g, p.ErlangConfig, p.source())
}

// GeometricMeanParameters applies the 3x3 geometric mean. It has no parameters.
type GeometricMeanParameters struct {
	custom
}

// NewGeometricMeanParameters creates geometric mean parameters
func NewGeometricMeanParameters() *GeometricMeanParameters {
	return &GeometricMeanParameters{custom: newCustom()}
}

func (p *GeometricMeanParameters) Kind() Kind { return GeometricMean }
func (p *GeometricMeanParameters) GetParameter(name string) interface{} { return p.get(name) }
func (p *GeometricMeanParameters) SetParameter(name string, value interface{}) { p.set(name, value) }
func (p *GeometricMeanParameters) Validate() error { return nil }

// Apply runs restore.GeometricMean
func (p *GeometricMeanParameters) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	return restore.GeometricMean(g)
}

// ContraharmonicParameters configures the contraharmonic mean
type ContraharmonicParameters struct {
	// Q is the filter order
	Q float64

	custom
}

// NewContraharmonicParameters creates contraharmonic parameters with Q = 1
func NewContraharmonicParameters() *ContraharmonicParameters {
	return &ContraharmonicParameters{Q: 1, custom: newCustom()}
}

func (p *ContraharmonicParameters) Kind() Kind { return Contraharmonic }

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *ContraharmonicParameters) GetParameter(name string) interface{} {
	if name == "q" {
		return p.Q
	}
	return p.get(name)
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *ContraharmonicParameters) SetParameter(name string, value interface{}) {
	if name == "q" {
		if v, ok := toFloat(value); ok {
			p.Q = v
		}
		return
	}
	p.set(name, value)
}

// Validate requires a finite order
func (p *ContraharmonicParameters) Validate() error {
	if math.IsNaN(p.Q) || math.IsInf(p.Q, 0) {
		return fmt.Errorf("%w: contraharmonic order %v", pixel.ErrInvalidParameter, p.Q)
	}
	return nil
}

// WithQ sets the order and returns the parameters for chaining
func (p *ContraharmonicParameters) WithQ(q float64) *ContraharmonicParameters {
	p.Q = q
	return p
}

// Apply runs restore.Contraharmonic
func (p *ContraharmonicParameters) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	return restore.Contraharmonic(g, p.Q)
}

// OrderStatisticParameters applies the 3x3 median. It has no parameters.
type OrderStatisticParameters struct {
	custom
}

// NewOrderStatisticParameters creates order statistic parameters
func NewOrderStatisticParameters() *OrderStatisticParameters {
	return &OrderStatisticParameters{custom: newCustom()}
}

func (p *OrderStatisticParameters) Kind() Kind { return OrderStatistic }
func (p *OrderStatisticParameters) GetParameter(name string) interface{} { return p.get(name) }
func (p *OrderStatisticParameters) SetParameter(name string, value interface{}) { p.set(name, value) }
func (p *OrderStatisticParameters) Validate() error { return nil }

// Apply runs restore.OrderStatistic
func (p *OrderStatisticParameters) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	return restore.OrderStatistic(g)
}
