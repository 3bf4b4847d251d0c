package tonemap

// ColorMatrix is a 3x3 linear transform stored as rows.
type ColorMatrix [3]Color

// Apply returns m * c, treating c as a column vector.
func (m ColorMatrix) Apply(c Color) Color {
	return Color{R: Dot(m[0], c), G: Dot(m[1], c), B: Dot(m[2], c)}
}

// Mul returns the matrix product m * o, so that m.Mul(o).Apply(c) == m.Apply(o.Apply(c)).
func (m ColorMatrix) Mul(o ColorMatrix) ColorMatrix {
	cols := ColorMatrix{
		{R: o[0].R, G: o[1].R, B: o[2].R},
		{R: o[0].G, G: o[1].G, B: o[2].G},
		{R: o[0].B, G: o[1].B, B: o[2].B},
	}
	var out ColorMatrix
	for i, row := range m {
		out[i] = Color{R: Dot(row, cols[0]), G: Dot(row, cols[1]), B: Dot(row, cols[2])}
	}
	return out
}

// Stephen Hill's fit of the ACES RRT+ODT.
// acesInputMatrix is sRGB => XYZ => D65_2_D60 => AP1 => RRT_SAT,
// acesOutputMatrix is ODT_SAT => XYZ => D60_2_D65 => sRGB.
var (
	acesInputMatrix = ColorMatrix{
		{R: 0.59719, G: 0.35458, B: 0.04823},
		{R: 0.07600, G: 0.90834, B: 0.01566},
		{R: 0.02840, G: 0.13383, B: 0.83777},
	}
	acesOutputMatrix = ColorMatrix{
		{R: 1.60475, G: -0.53108, B: -0.07367},
		{R: -0.10208, G: 1.10813, B: -0.00605},
		{R: -0.00327, G: -0.07276, B: 1.07602},
	}
)
