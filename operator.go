package tonemap

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOperator is returned when an operator name can not be resolved.
var ErrUnknownOperator = errors.New("unknown tonemap operator")

// Operator identifies a tonemapping transfer function.
// See https://64.github.io/tonemapping for the curves.
type Operator int

const (
	// None passes colors through unchanged.
	None Operator = iota
	// Reinhard is v / (1 + v) per channel.
	Reinhard
	// ExtendedReinhard is Reinhard with a white point of 3.5.
	ExtendedReinhard
	// ExtendedReinhardLuminance applies extended Reinhard to luminance only.
	ExtendedReinhardLuminance
	// ReinhardJodie blends luminance and per-channel Reinhard.
	ReinhardJodie
	// HableFilmic is John Hable's Uncharted 2 curve.
	HableFilmic
	// ACESFitted is Stephen Hill's fit of the ACES RRT and ODT.
	ACESFitted
	// ACESApproximated is Krzysztof Narkowicz's ACES approximation.
	ACESApproximated

	operatorCount
)

var operatorNames = [operatorCount]string{
	None:                      "none",
	Reinhard:                  "reinhard",
	ExtendedReinhard:          "extended-reinhard",
	ExtendedReinhardLuminance: "extended-reinhard-lum",
	ReinhardJodie:             "reinhard-jodie",
	HableFilmic:               "hable-filmic",
	ACESFitted:                "aces-fitted",
	ACESApproximated:          "aces-approximated",
}

var operatorFuncs = [operatorCount]func(Color) Color{
	None:                      func(c Color) Color { return c },
	Reinhard:                  tmoReinhard,
	ExtendedReinhard:          tmoExtendedReinhard,
	ExtendedReinhardLuminance: tmoExtendedReinhardLuminance,
	ReinhardJodie:             tmoReinhardJodie,
	HableFilmic:               tmoHableFilmic,
	ACESFitted:                tmoACESFitted,
	ACESApproximated:          tmoACESApproximated,
}

// Operators returns all operators in ordinal order.
func Operators() []Operator {
	ops := make([]Operator, 0, operatorCount)
	for op := None; op < operatorCount; op++ {
		ops = append(ops, op)
	}
	return ops
}

// ParseOperator resolves an operator by name.
func ParseOperator(name string) (Operator, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for op, n := range operatorNames {
		if n == name {
			return Operator(op), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, name)
}

// ParseOperators resolves a comma-separated list of names, "all" or an empty
// string selects every operator.
func ParseOperators(list string) ([]Operator, error) {
	list = strings.TrimSpace(list)
	if list == "" || list == "all" {
		return Operators(), nil
	}
	var ops []Operator
	for _, name := range strings.Split(list, ",") {
		op, err := ParseOperator(name)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Valid reports whether o is one of the defined operators.
func (o Operator) Valid() bool {
	return o >= None && o < operatorCount
}

func (o Operator) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Operator(%d)", int(o))
	}
	return operatorNames[o]
}

// Apply tonemaps a single color. It panics if o is not a valid operator.
func (o Operator) Apply(c Color) Color {
	if !o.Valid() {
		panic(fmt.Sprintf("tonemap: invalid operator %d", int(o)))
	}
	return operatorFuncs[o](c)
}

// Apply tonemaps c with op.
func Apply(op Operator, c Color) Color {
	return op.Apply(c)
}

func tmoReinhard(v Color) Color {
	return v.Div(v.AddScalar(1))
}

func tmoExtendedReinhard(v Color) Color {
	numerator := v.Mul(v.DivScalar(maxWhite * maxWhite).AddScalar(1))
	return numerator.Div(v.AddScalar(1))
}

func tmoExtendedReinhardLuminance(v Color) Color {
	lOld := Luminance(v)
	numerator := lOld * (1 + lOld/(maxWhite*maxWhite))
	lNew := numerator / (1 + lOld)
	return ChangeLuminance(v, lNew)
}

func tmoReinhardJodie(v Color) Color {
	t := v.Div(v.AddScalar(1))
	return Lerp(v.DivScalar(1+Luminance(v)), t, t)
}

func hablePartial(x Color) Color {
	const (
		a = 0.15
		b = 0.50
		c = 0.10
		d = 0.20
		e = 0.02
		f = 0.30
	)
	num := x.Mul(x.Scale(a).AddScalar(c * b)).AddScalar(d * e)
	den := x.Mul(x.Scale(a).AddScalar(b)).AddScalar(d * f)
	return num.Div(den).SubScalar(e / f)
}

var hableWhiteScale = Splat(1).Div(hablePartial(Splat(hableWhitePoint)))

func tmoHableFilmic(v Color) Color {
	return hablePartial(v.Scale(hableExposureBias)).Mul(hableWhiteScale)
}

func acesRRTAndODTFit(v Color) Color {
	a := v.Mul(v.AddScalar(0.0245786)).SubScalar(0.000090537)
	b := v.Mul(v.Scale(0.983729).AddScalar(0.4329510)).AddScalar(0.238081)
	return a.Div(b)
}

func tmoACESFitted(v Color) Color {
	v = acesInputMatrix.Apply(v)
	v = acesRRTAndODTFit(v)
	return acesOutputMatrix.Apply(v)
}

func tmoACESApproximated(v Color) Color {
	const (
		a = 2.51
		b = 0.03
		c = 2.43
		d = 0.59
		e = 0.14
	)
	v = v.Scale(acesApproxScale)
	num := v.Mul(v.Scale(a).AddScalar(b))
	den := v.Mul(v.Scale(c).AddScalar(d)).AddScalar(e)
	return num.Div(den).Clamp(0, 1)
}
