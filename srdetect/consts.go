package srdetect

const (
	// Epsilon is added to the rolling std before dividing, so a flat
	// window still yields a finite z-score. The value is part of the
	// detection contract: changing it shifts which observations cross
	// the threshold.
	Epsilon = 1e-6

	DefaultWindow    = 40
	DefaultThreshold = 3.0
)
