// Package ops exposes every image operation as a typed, configurable value.
//
// Each Kind has a parameter struct that both applies the operation and
// implements the go-dicom codec.Parameters interface, so operations can be
// configured by name as well as through their fields.
package ops

import (
	"fmt"

	"github.com/cocosip/go-pcx-codec/pixel"
)

// Kind identifies an operation
type Kind int

const (
	Negative Kind = iota + 1
	Threshold
	Gamma
	Average
	Median
	Highpass
	Unsharp
	Highboost
	Gradient
	SaltAndPepper
	Gaussian
	Erlang
	GeometricMean
	Contraharmonic
	OrderStatistic
)

var kindNames = map[Kind]string{
	Negative:       "negative",
	Threshold:      "threshold",
	Gamma:          "gamma",
	Average:        "average",
	Median:         "median",
	Highpass:       "highpass",
	Unsharp:        "unsharp",
	Highboost:      "highboost",
	Gradient:       "gradient",
	SaltAndPepper:  "salt-and-pepper",
	Gaussian:       "gaussian",
	Erlang:         "erlang",
	GeometricMean:  "geometric-mean",
	Contraharmonic: "contraharmonic",
	OrderStatistic: "order-statistic",
}

// String returns the operation name
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind named name
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown operation %q", pixel.ErrInvalidParameter, name)
}

// Operation is a configured image operation
type Operation interface {
	// Kind returns the operation kind
	Kind() Kind

	// Apply runs the operation on g and returns a new buffer
	Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error)
}

// New returns the operation for kind with default parameters
func New(kind Kind) (Operation, error) {
	switch kind {
	case Negative:
		return NewNegativeParameters(), nil
	case Threshold:
		return NewThresholdParameters(), nil
	case Gamma:
		return NewGammaParameters(), nil
	case Average:
		return NewAverageParameters(), nil
	case Median:
		return NewMedianParameters(), nil
	case Highpass:
		return NewHighpassParameters(), nil
	case Unsharp:
		return NewUnsharpParameters(), nil
	case Highboost:
		return NewHighboostParameters(), nil
	case Gradient:
		return NewGradientParameters(), nil
	case SaltAndPepper:
		return NewSaltAndPepperParameters(), nil
	case Gaussian:
		return NewGaussianParameters(), nil
	case Erlang:
		return NewErlangParameters(), nil
	case GeometricMean:
		return NewGeometricMeanParameters(), nil
	case Contraharmonic:
		return NewContraharmonicParameters(), nil
	case OrderStatistic:
		return NewOrderStatisticParameters(), nil
	default:
		return nil, fmt.Errorf("%w: unknown operation %s", pixel.ErrInvalidParameter, kind)
	}
}

// Pipeline applies operations in order
type Pipeline []Operation

// Apply runs every step on the output of the previous one and stops at the
// first error.
func (p Pipeline) Apply(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	out := g
	for i, op := range p {
		next, err := op.Apply(out)
		if err != nil {
			return pixel.GrayBuffer{}, fmt.Errorf("step %d (%s): %w", i, op.Kind(), err)
		}
		out = next
	}
	if len(p) == 0 {
		return g.Clone(), nil
	}
	return out, nil
}
