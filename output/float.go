package output

import "strconv"

// Float rendering follows ECMAScript Number.prototype.toString: the
// shortest decimal digit string that round-trips to the same IEEE-754
// value, positional while the decimal exponent stays within (-6, 21] and
// exponential beyond. strconv supplies the shortest digits; the layout
// rules are applied on top.
//
// Callers filter out NaN and infinities first; those have no text form
// here.

// AppendFloat32 appends the ECMAScript shortest form of value, using
// 32-bit round-trip thresholds.
func AppendFloat32(dst []byte, value float32) []byte {
	return appendFloat32(dst, value)
}

// AppendFloat64 appends the ECMAScript shortest form of value.
func AppendFloat64(dst []byte, value float64) []byte {
	return appendFloat64(dst, value)
}

func appendFloat32(dst []byte, value float32) []byte {
	return ecmaFloat(dst, float64(value), 32)
}

func appendFloat64(dst []byte, value float64) []byte {
	return ecmaFloat(dst, value, 64)
}

func ecmaFloat(dst []byte, value float64, bitSize int) []byte {
	if value == 0 {
		// Covers -0 as well: ECMAScript prints both zeros as "0".
		return append(dst, '0')
	}
	if value < 0 {
		dst = append(dst, '-')
		value = -value
	}

	// Shortest digits in the form d[.ddd]e±dd.
	var scratch [32]byte
	raw := strconv.AppendFloat(scratch[:0], value, 'e', -1, bitSize)

	ePos := -1
	for i, c := range raw {
		if c == 'e' {
			ePos = i
			break
		}
	}

	var digits []byte
	digits = append(digits, raw[0])
	if ePos > 1 {
		digits = append(digits, raw[2:ePos]...)
	}
	exp, _ := strconv.Atoi(string(raw[ePos+1:]))

	// n is the position of the decimal point relative to the digit string.
	n := exp + 1
	k := len(digits)

	switch {
	case k <= n && n <= 21:
		dst = append(dst, digits...)
		for i := k; i < n; i++ {
			dst = append(dst, '0')
		}
	case 0 < n && n <= 21:
		dst = append(dst, digits[:n]...)
		dst = append(dst, '.')
		dst = append(dst, digits[n:]...)
	case -6 < n && n <= 0:
		dst = append(dst, '0', '.')
		for i := n; i < 0; i++ {
			dst = append(dst, '0')
		}
		dst = append(dst, digits...)
	default:
		dst = append(dst, digits[0])
		if k > 1 {
			dst = append(dst, '.')
			dst = append(dst, digits[1:]...)
		}
		dst = append(dst, 'e')
		if exp >= 0 {
			dst = append(dst, '+')
		} else {
			dst = append(dst, '-')
			exp = -exp
		}
		dst = strconv.AppendInt(dst, int64(exp), 10)
	}
	return dst
}
