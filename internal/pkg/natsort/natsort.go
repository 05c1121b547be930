// Package natsort compares strings in natural order, so that "Board 2" sorts
// before "Board 10".
package natsort

import "unicode"

// Less reports whether a sorts before b in natural order. Digit runs are
// compared by numeric value, everything else byte-wise. Numeric comparison
// works on the digit strings themselves, so arbitrarily long runs are fine.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Compare returns -1, 0 or 1 ordering a against b in natural order.
func Compare(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	i, j := 0, 0

	for i < len(ra) && j < len(rb) {
		ca, cb := ra[i], rb[j]

		if unicode.IsDigit(ca) && unicode.IsDigit(cb) {
			si := i
			for i < len(ra) && unicode.IsDigit(ra[i]) {
				i++
			}
			sj := j
			for j < len(rb) && unicode.IsDigit(rb[j]) {
				j++
			}

			if c := compareDigits(string(ra[si:i]), string(rb[sj:j])); c != 0 {
				return c
			}

			continue
		}

		if ca != cb {
			if ca < cb {
				return -1
			}

			return 1
		}

		i++
		j++
	}

	switch {
	case i < len(ra):
		return 1
	case j < len(rb):
		return -1
	default:
		return 0
	}
}

func compareDigits(a, b string) int {
	a = trimLeadingZeros(a)
	b = trimLeadingZeros(b)

	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}

		return 1
	}

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func trimLeadingZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}

	return s
}
