// Package timespec parses and formats the "m:ss.ms" time specs used on the
// command line and in info output.
package timespec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Skyluker4/Audfill/internal/logger"
)

// Default is used when a time spec cannot be parsed.
const Default = 18 * time.Second

// Parse reads "m:ss.ms", "m:ss", "s.ms" or "s". The digits after the dot are
// taken as milliseconds verbatim, so "1.5" is 1005ms. On malformed input it
// warns on log and returns Default.
func Parse(text string, log *logger.Logger) time.Duration {
	d, err := parse(text)
	if err != nil {
		if log != nil {
			log.Warn(`Invalid time %q. Make sure it is in the format "m:ss.ms", "m:ss", "s.ms", or "s". Will use default time value instead.`, text)
		}
		return Default
	}
	return d
}

func parse(text string) (time.Duration, error) {
	text = strings.TrimSpace(text)

	whole, frac, hasFrac := strings.Cut(text, ".")
	var ms int
	if hasFrac {
		n, err := component(frac)
		if err != nil {
			return 0, err
		}
		ms = n
	}

	var minutes, seconds int
	minPart, secPart, hasMin := strings.Cut(whole, ":")
	if hasMin {
		m, err := component(minPart)
		if err != nil {
			return 0, err
		}
		s, err := component(secPart)
		if err != nil {
			return 0, err
		}
		minutes, seconds = m, s
	} else {
		s, err := component(whole)
		if err != nil {
			return 0, err
		}
		seconds = s
	}

	return time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// component parses one non-negative decimal field.
func component(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty time component")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid time component %q", s)
		}
	}
	return strconv.Atoi(s)
}

// Format renders d as "m:ss.mmm". Minutes are not padded.
func Format(d time.Duration) string {
	ms := d.Milliseconds()
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	minutes := ms / 60000
	ms -= minutes * 60000
	return fmt.Sprintf("%s%d:%02d.%03d", sign, minutes, ms/1000, ms%1000)
}
