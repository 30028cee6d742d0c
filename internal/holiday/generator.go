package holiday

import (
	"sort"
	"time"
)

// Definition is a single generated holiday.
type Definition struct {
	Date time.Time
	Name string
}

// Generate returns the nationwide fixed-date and Easter-relative
// holidays for a given year. It is the deterministic, offline
// computation backing OfflineOracle: no network call, no external
// state, same output for the same year every time.
func Generate(year int) ([]Definition, error) {
	if year < 1900 || year > 2200 {
		return nil, errInvalidYear(year)
	}

	easter := easterSunday(year)
	fixed := func(month time.Month, day int, name string) Definition {
		return Definition{Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Name: name}
	}
	offset := func(days int, name string) Definition {
		return Definition{Date: easter.AddDate(0, 0, days), Name: name}
	}

	holidays := []Definition{
		fixed(time.January, 1, "New Year's Day"),
		offset(-2, "Good Friday"),
		offset(1, "Easter Monday"),
		fixed(time.May, 1, "Labour Day"),
		offset(39, "Ascension Day"),
		offset(50, "Whit Monday"),
		fixed(time.December, 25, "Christmas Day"),
		fixed(time.December, 26, "Second Day of Christmas"),
	}

	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays, nil
}

func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
