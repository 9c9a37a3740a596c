package srgb

import (
	"math"
	"sync"
)

// EncodedToLinear applies the inverse sRGB transfer function to a
// normalised encoded value.
func EncodedToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// LinearToEncoded applies the sRGB transfer function to a normalised
// linear value. Negative values encode to zero.
func LinearToEncoded(v float64) float64 {
	if v <= 0 {
		return 0
	}
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

var encoded8ToLinearLUT = sync.OnceValue(func() (ans [256]float64) {
	for i := range ans {
		ans[i] = EncodedToLinear(float64(i) / math.MaxUint8)
	}
	return
})

var encoded16ToLinearLUT = sync.OnceValue(func() []float64 {
	ans := make([]float64, math.MaxUint16+1)
	for i := range ans {
		ans[i] = EncodedToLinear(float64(i) / math.MaxUint16)
	}
	return ans
})

// From8Bit converts an 8-bit sRGB encoded value to a normalised linear value
// between 0.0 and 1.0.
//
// This implementation uses a fast look-up table without sacrificing accuracy.
func From8Bit(v uint8) float64 {
	return encoded8ToLinearLUT()[v]
}

// From16Bit converts a 16-bit sRGB encoded value to a normalised linear value
// between 0.0 and 1.0.
//
// This implementation uses a fast look-up table without sacrificing accuracy.
func From16Bit(v uint16) float64 {
	return encoded16ToLinearLUT()[v]
}

// To8Bit converts a linear value to an 8-bit sRGB encoded value, clipping the
// linear value to between 0.0 and 1.0.
func To8Bit(v float64) uint8 {
	return uint8(math.Round(LinearToEncoded(min(v, 1)) * math.MaxUint8))
}

// To16Bit converts a linear value to a 16-bit sRGB encoded value, clipping the
// linear value to between 0.0 and 1.0.
func To16Bit(v float64) uint16 {
	return uint16(math.Round(LinearToEncoded(min(v, 1)) * math.MaxUint16))
}
