package colorimetry

// DefaultShape is the 360-780nm range sampled every 5nm that the bundled
// datasets use.
var DefaultShape = SpectralShape{Start: 360, End: 780, Interval: 5}

// CIE 1931 2° standard observer, 360-780nm every 5nm.
var cie1931_2degree = [...][3]float64{
	{0.000129900, 0.000003917, 0.000606100},
	{0.000232100, 0.000006965, 0.001086000},
	{0.000414900, 0.000012390, 0.001946000},
	{0.000741600, 0.000022020, 0.003486000},
	{0.001368000, 0.000039000, 0.006450001},
	{0.002236000, 0.000064000, 0.010549990},
	{0.004243000, 0.000120000, 0.020050010},
	{0.007650000, 0.000217000, 0.036210000},
	{0.014310000, 0.000396000, 0.067850010},
	{0.023190000, 0.000640000, 0.110200000},
	{0.043510000, 0.001210000, 0.207400000},
	{0.077630000, 0.002180000, 0.371300000},
	{0.134380000, 0.004000000, 0.645600000},
	{0.214770000, 0.007300000, 1.039050100},
	{0.283900000, 0.011600000, 1.385600000},
	{0.328500000, 0.016840000, 1.622960000},
	{0.348280000, 0.023000000, 1.747060000},
	{0.348060000, 0.029800000, 1.782600000},
	{0.336200000, 0.038000000, 1.772110000},
	{0.318700000, 0.048000000, 1.744100000},
	{0.290800000, 0.060000000, 1.669200000},
	{0.251100000, 0.073900000, 1.528100000},
	{0.195360000, 0.090980000, 1.287640000},
	{0.142100000, 0.112600000, 1.041900000},
	{0.095640000, 0.139020000, 0.812950100},
	{0.057950010, 0.169300000, 0.616200000},
	{0.032010000, 0.208020000, 0.465180000},
	{0.014700000, 0.258600000, 0.353300000},
	{0.004900000, 0.323000000, 0.272000000},
	{0.002400000, 0.407300000, 0.212300000},
	{0.009300000, 0.503000000, 0.158200000},
	{0.029100000, 0.608200000, 0.111700000},
	{0.063270000, 0.710000000, 0.078249990},
	{0.109600000, 0.793200000, 0.057250010},
	{0.165500000, 0.862000000, 0.042160000},
	{0.225749900, 0.914850100, 0.029840000},
	{0.290400000, 0.954000000, 0.020300000},
	{0.359700000, 0.980300000, 0.013400000},
	{0.433449900, 0.994950100, 0.008749999},
	{0.512050100, 1.000000000, 0.005749999},
	{0.594500000, 0.995000000, 0.003900000},
	{0.678400000, 0.978600000, 0.002749999},
	{0.762100000, 0.952000000, 0.002100000},
	{0.842500000, 0.915400000, 0.001800000},
	{0.916300000, 0.870000000, 0.001650001},
	{0.978600000, 0.816300000, 0.001400000},
	{1.026300000, 0.757000000, 0.001100000},
	{1.056700000, 0.694900000, 0.001000000},
	{1.062200000, 0.631000000, 0.000800000},
	{1.045600000, 0.566800000, 0.000600000},
	{1.002600000, 0.503000000, 0.000340000},
	{0.938400000, 0.441200000, 0.000240000},
	{0.854449900, 0.381000000, 0.000190000},
	{0.751400000, 0.321000000, 0.000100000},
	{0.642400000, 0.265000000, 0.000049999},
	{0.541900000, 0.217000000, 0.000030000},
	{0.447900000, 0.175000000, 0.000020000},
	{0.360800000, 0.138200000, 0.000010000},
	{0.283500000, 0.107000000, 0},
	{0.218700000, 0.081600000, 0},
	{0.164900000, 0.061000000, 0},
	{0.121200000, 0.044580000, 0},
	{0.087400000, 0.032000000, 0},
	{0.063600000, 0.023200000, 0},
	{0.046770000, 0.017000000, 0},
	{0.032900000, 0.011920000, 0},
	{0.022700000, 0.008210000, 0},
	{0.015840000, 0.005723000, 0},
	{0.011359160, 0.004102000, 0},
	{0.008110916, 0.002929000, 0},
	{0.005790346, 0.002091000, 0},
	{0.004109457, 0.001484000, 0},
	{0.002899327, 0.001047000, 0},
	{0.002049190, 0.000740000, 0},
	{0.001439971, 0.000520000, 0},
	{0.000999949, 0.000361100, 0},
	{0.000690079, 0.000249200, 0},
	{0.000476021, 0.000171900, 0},
	{0.000332301, 0.000120000, 0},
	{0.000234826, 0.000084800, 0},
	{0.000166151, 0.000060000, 0},
	{0.000117413, 0.000042400, 0},
	{0.000083075, 0.000030000, 0},
	{0.000058707, 0.000021200, 0},
	{0.000041509, 0.000014990, 0},
}

// CIE standard illuminant D65 relative spectral power, 360-780nm every 5nm.
var d65 = [...]float64{
	46.6383, 49.3637, 52.0891, 51.0323, 49.9755, 52.3118, 54.6482, 68.7015,
	82.7549, 87.1204, 91.486, 92.4589, 93.4318, 90.057, 86.6823, 95.7736,
	104.865, 110.936, 117.008, 117.41, 117.812, 116.336, 114.861, 115.392,
	115.923, 112.367, 108.811, 109.082, 109.354, 108.578, 107.802, 106.296,
	104.79, 106.239, 107.689, 106.047, 104.405, 104.225, 104.046, 102.023,
	100, 98.1671, 96.3342, 96.0611, 95.788, 92.2368, 88.6856, 89.3459,
	90.0062, 89.8026, 89.5991, 88.6489, 87.6987, 85.4936, 83.2886, 83.4939,
	83.6992, 81.863, 80.0268, 80.1207, 80.2146, 81.2462, 82.2778, 80.281,
	78.2842, 74.0027, 69.7213, 70.6652, 71.6091, 72.979, 74.349, 67.9765,
	61.604, 65.7448, 69.8856, 72.4863, 75.087, 69.3398, 63.5927, 55.0054,
	46.4182, 56.6118, 66.8054, 65.0941, 63.3828,
}

// CIE1931_2Degree returns a fresh copy of the CIE 1931 2° standard
// observer colour matching functions.
func CIE1931_2Degree() *CMFS {
	return &CMFS{Name: "CIE 1931 2 Degree Standard Observer", Shape: DefaultShape, Values: append([][3]float64(nil), cie1931_2degree[:]...)}
}

// D65 returns a fresh copy of the CIE standard illuminant D65.
func D65() *SpectralDistribution {
	return &SpectralDistribution{Name: "D65", Shape: DefaultShape, Values: append([]float64(nil), d65[:]...)}
}
