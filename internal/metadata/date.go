package metadata

import (
	"fmt"
	"strconv"
	"strings"
)

// ReleaseDate is a calendar date as reported by a catalog.
type ReleaseDate struct {
	Year  int
	Month int
	Day   int
}

// ParseReleaseDate parses "YYYY-MM-DD". Anything else is an error.
func ParseReleaseDate(s string) (ReleaseDate, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return ReleaseDate{}, fmt.Errorf("invalid release date %q: want YYYY-MM-DD", s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return ReleaseDate{}, fmt.Errorf("invalid release date %q: want YYYY-MM-DD", s)
		}
		nums[i] = n
	}

	return ReleaseDate{Year: nums[0], Month: nums[1], Day: nums[2]}, nil
}

func (d ReleaseDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
