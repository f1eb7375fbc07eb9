package utils

// HasFlag returns whether the given flag byte has the bit at the given position set.
func HasFlag(flags byte, bit uint8) bool {
	return flags&(1<<bit) != 0
}

// WithFlag returns the flag byte with the bit at the given position set or cleared.
func WithFlag(flags byte, bit uint8, on bool) byte {
	if on {
		return flags | (1 << bit)
	}
	return flags &^ (1 << bit)
}
