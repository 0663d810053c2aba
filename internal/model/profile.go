package model

// Profile is a relative-frequency distribution over trigrams. Keys are NFC
// normalized 3-character strings; values are in (0, 1].
type Profile map[string]float64

// Sum returns the total of all frequencies.
func (p Profile) Sum() float64 {
	var s float64
	for _, v := range p {
		s += v
	}
	return s
}
