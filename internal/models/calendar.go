package models

// DateTime is the calendar decomposition of a Unix timestamp.
// It is ephemeral: computed on demand, never persisted.
type DateTime struct {
	Year    int64
	Month   uint8
	Day     uint8
	Hours   uint8
	Minutes uint8
	Seconds uint8
}

// monthDays is 1-indexed; February is corrected for leap years separately.
var monthDays = [13]int64{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// ParseTimestamp converts seconds since 1970-01-01T00:00:00Z into a DateTime
// using the proleptic Gregorian leap rule. Negative timestamps are rejected.
// The decomposition is pure integer arithmetic, so the result is identical on
// every platform for a given input.
func ParseTimestamp(timestamp int64) (DateTime, error) {
	if timestamp < 0 {
		return DateTime{}, ErrInvalidTimestamp
	}

	t := timestamp
	seconds := t % 60
	t /= 60
	minutes := t % 60
	t /= 60
	hours := t % 24
	t /= 24

	days := t
	year := int64(1970)
	for days >= 365 {
		if isLeapYear(year) {
			if days < 366 {
				// Dec 31 of a leap year: day index 365 still belongs
				// to the current year.
				break
			}
			days -= 366
		} else {
			days -= 365
		}
		year++
	}

	month := int64(1)
	for month < 12 {
		length := monthDays[month]
		if month == 2 && isLeapYear(year) {
			length = 29
		}
		if days < length {
			break
		}
		days -= length
		month++
	}

	return DateTime{
		Year:    year,
		Month:   uint8(month),
		Day:     uint8(days + 1),
		Hours:   uint8(hours),
		Minutes: uint8(minutes),
		Seconds: uint8(seconds),
	}, nil
}

// MonthDifference returns the number of whole calendar months between two
// timestamps, counting month numbers only: days within the month are ignored,
// so Jan 31 to Feb 1 is one month. end earlier than start is an error; elapsed
// time is never negative in this domain.
func MonthDifference(start, end int64) (uint64, error) {
	if end < start {
		return 0, ErrEndBeforeStart
	}
	s, err := ParseTimestamp(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseTimestamp(end)
	if err != nil {
		return 0, err
	}

	months := (e.Year-s.Year)*12 + int64(e.Month) - int64(s.Month)
	return uint64(months), nil
}
