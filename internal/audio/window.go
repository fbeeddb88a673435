// Package audio chooses and cuts the sample sent for recognition.
package audio

import (
	"time"

	"github.com/Skyluker4/Audfill/internal/logger"
	"github.com/Skyluker4/Audfill/internal/timespec"
)

const (
	// DefaultLength is the sample length used when none is given.
	DefaultLength = 18 * time.Second
	// MaxLength is the longest sample audd.io accepts.
	MaxLength = 25 * time.Second
)

// WindowOptions are the raw start/end/length time specs from the command
// line. Empty means unset.
type WindowOptions struct {
	Start  string
	End    string
	Length string
}

// Custom reports whether any part of the window was given.
func (o WindowOptions) Custom() bool {
	return o.Start != "" || o.End != "" || o.Length != ""
}

// Window is the part of a file to send for recognition.
type Window struct {
	Start    time.Duration
	HasStart bool
	Length   time.Duration
	// Explicit is set when the length came from the user (length or end).
	Explicit bool
}

// ResolveWindow turns the options into a Window. Problems are reported on
// log and replaced by defaults:
//   - end without start is ignored
//   - length wins over end
//   - lengths over MaxLength are truncated
//   - non-positive lengths become DefaultLength
func ResolveWindow(opts WindowOptions, log *logger.Logger) Window {
	var w Window
	end := opts.End

	if opts.Start != "" {
		w.Start = timespec.Parse(opts.Start, log)
		w.HasStart = true
	} else if end != "" {
		log.Warn("End time given with no start, will ignore end time")
		end = ""
	}

	switch {
	case opts.Length != "":
		if end != "" {
			log.Warn("End time and length given, length will be used")
		}
		w.Length = timespec.Parse(opts.Length, log)
		w.Explicit = true
	case end != "":
		w.Length = timespec.Parse(end, log) - w.Start
		w.Explicit = true
	default:
		w.Length = DefaultLength
	}

	if w.Length > MaxLength {
		log.Warn("Specified length is longer than %s. Length will be truncated to %s",
			timespec.Format(MaxLength), timespec.Format(MaxLength))
		w.Length = MaxLength
	}
	if w.Length <= 0 {
		log.Warn("Length is less than or equal to zero. %s will be used instead", timespec.Format(DefaultLength))
		w.Length = DefaultLength
	}

	return w
}

// Cut is a resolved window against a concrete sample.
type Cut struct {
	Start  time.Duration
	Length time.Duration
	// Whole means the entire sample is used untrimmed.
	Whole bool
}

// Plan places w inside a sample of length total. A start at or past the end
// of the sample falls back to centering; a sample shorter than the window
// is used whole.
func (w Window) Plan(total time.Duration, log *logger.Logger) Cut {
	hasStart := w.HasStart
	if hasStart && total <= w.Start {
		log.Warn("Sound file is shorter than given start time. Will use halfway point instead")
		hasStart = false
	}

	if total <= w.Length {
		if w.Explicit {
			log.Warn("Sound file not as long as specified length, will use entire audio file instead")
		}
		return Cut{Length: total, Whole: true}
	}

	if !hasStart {
		return Cut{Start: total/2 - w.Length/2, Length: w.Length}
	}
	return Cut{Start: w.Start, Length: w.Length}
}
