package output

import "fmt"

// Timestamps are epoch offsets rendered as short ISO-8601 UTC: the date is
// always printed, and the time tail only down to the finest unit that is
// actually set. Parquet's is_adjusted_to_utc flag is deliberately ignored:
// plenty of UTC data in the wild is written without it, and a non-UTC
// timestamp does not name one instant in time, so every value renders as
// UTC.
//
// Dates are signed day counts since 1970-01-01 on the proleptic Gregorian
// calendar; years outside [0, 9999] print with printf %04d semantics.

const secondsPerDay = 86400

// appendDate appends daysSinceEpoch as YYYY-MM-DD.
func appendDate(dst []byte, daysSinceEpoch int64) []byte {
	year, month, day := civilFromDays(daysSinceEpoch)
	return fmt.Appendf(dst, "%04d-%02d-%02d", year, month, day)
}

// appendShortTimestamp appends value, an epoch offset with fractionDigits
// (3, 6 or 9) subsecond digits, as a short ISO-8601 UTC timestamp.
func appendShortTimestamp(dst []byte, value int64, fractionDigits int) []byte {
	var divisor int64
	switch fractionDigits {
	case 3:
		divisor = 1_000
	case 6:
		divisor = 1_000_000
	case 9:
		divisor = 1_000_000_000
	default:
		panic(fmt.Sprintf("unsupported fraction digits %d", fractionDigits))
	}

	// Euclidean decomposition: the subsecond fraction is non-negative even
	// for instants before the epoch.
	epochSeconds := value / divisor
	fraction := value % divisor
	if fraction < 0 {
		epochSeconds--
		fraction += divisor
	}

	days := epochSeconds / secondsPerDay
	secondOfDay := epochSeconds % secondsPerDay
	if secondOfDay < 0 {
		days--
		secondOfDay += secondsPerDay
	}
	hour := secondOfDay / 3600
	minute := secondOfDay % 3600 / 60
	second := secondOfDay % 60

	// Drop trailing zero groups: 9 -> 6 -> 3 -> 0 fraction digits.
	for fractionDigits > 0 && fraction%1000 == 0 {
		fraction /= 1000
		fractionDigits -= 3
	}

	dst = appendDate(dst, days)
	switch {
	case fractionDigits > 0:
		dst = fmt.Appendf(dst, "T%02d:%02d:%02d.%0*dZ", hour, minute, second, fractionDigits, fraction)
	case second != 0:
		dst = fmt.Appendf(dst, "T%02d:%02d:%02dZ", hour, minute, second)
	case minute != 0:
		dst = fmt.Appendf(dst, "T%02d:%02dZ", hour, minute)
	case hour != 0:
		dst = fmt.Appendf(dst, "T%02dZ", hour)
	}
	return dst
}

// civilFromDays converts a day count since 1970-01-01 to a proleptic
// Gregorian calendar date. Days may be negative.
func civilFromDays(days int64) (year int64, month, day int) {
	days += 719468
	era := days
	if era < 0 {
		era -= 146096
	}
	era /= 146097
	dayOfEra := days - era*146097
	yearOfEra := (dayOfEra - dayOfEra/1460 + dayOfEra/36524 - dayOfEra/146096) / 365
	year = yearOfEra + era*400
	dayOfYear := dayOfEra - (365*yearOfEra + yearOfEra/4 - yearOfEra/100)
	monthIndex := (5*dayOfYear + 2) / 153
	day = int(dayOfYear - (153*monthIndex+2)/5 + 1)
	if monthIndex < 10 {
		month = int(monthIndex) + 3
	} else {
		month = int(monthIndex) - 9
	}
	if month <= 2 {
		year++
	}
	return year, month, day
}
