package tonemap

const (
	defaultQuality = 95
	defaultPattern = "out-%s.jpg"
	defaultISO     = 1.0
)

const (
	// maxWhite is the smallest value mapped to pure white by extended Reinhard.
	maxWhite = 3.5

	hableExposureBias = 1.5
	hableWhitePoint   = 11.2

	acesApproxScale = 0.6
)
