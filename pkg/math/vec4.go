package math

// Vec4 is a 4-component vector, used for RGBA colours.
type Vec4 [4]float32

// RGBA builds a colour vector from 0-255 channel values.
func RGBA(r, g, b, a uint8) Vec4 {
	return Vec4{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// Bytes converts a colour vector back to 0-255 channels, clamping out-of-range values.
func (v Vec4) Bytes() [4]uint8 {
	var out [4]uint8
	for i, c := range v {
		switch {
		case c <= 0:
			out[i] = 0
		case c >= 1:
			out[i] = 255
		default:
			out[i] = uint8(c*255 + 0.5)
		}
	}
	return out
}
