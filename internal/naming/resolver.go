// Package naming turns an aggregated song record into file names: template
// resolution, path sanitizing and collision-free output paths.
package naming

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Skyluker4/Audfill/internal/logger"
	"github.com/Skyluker4/Audfill/internal/metadata"
)

// ErrNoReleaseDate is returned when a template uses a date directive and no
// source supplied a release date.
var ErrNoReleaseDate = errors.New("no release date available")

// Resolver expands %-directive templates against a SongRecord.
//
//	%%  literal percent     %f  original filename
//	%a  artist              %c  composer
//	%b  album               %g  genre
//	%T  title               %t  short title
//	%x  Explicit or Clean   %i  ISRC
//	%k  disc number         %#  track number
//	%Y  year (2021)         %y  year (21)
//	%M  month (03)          %m  month (3)
//	%D  day (05)            %d  day (5)
//
// String directives with no value expand to "". Date directives with no
// release date fail the whole resolution.
type Resolver struct {
	logger *logger.Logger
}

// NewResolver creates a Resolver that reports warnings to log.
func NewResolver(log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.Discard()
	}
	return &Resolver{logger: log}
}

type token struct {
	literal   string
	directive byte // zero for literal tokens
}

// tokenize splits template into literal and directive tokens. "%%" becomes a
// literal "%" so nothing after it is treated as a directive. Unknown
// directives and a trailing lone "%" are kept as literal text.
func tokenize(template string) []token {
	var tokens []token
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, token{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' || i+1 == len(template) {
			lit.WriteByte(c)
			continue
		}

		next := template[i+1]
		switch {
		case next == '%':
			lit.WriteByte('%')
			i++
		case isDirective(next):
			flush()
			tokens = append(tokens, token{directive: next})
			i++
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return tokens
}

func isDirective(c byte) bool {
	return strings.IndexByte("fabcgTtxikYyMmDd#", c) >= 0
}

// Resolve expands template for rec. filename is substituted for %f as given.
// Runs of whitespace in the result collapse to one space and the result is
// trimmed.
func (r *Resolver) Resolve(rec *metadata.SongRecord, template, filename string) (string, error) {
	if strings.ContainsRune(template, 0) {
		r.logger.Warn("Illegal character in template %q, it will be removed", template)
		template = strings.ReplaceAll(template, "\x00", "")
	}

	var out strings.Builder
	for _, tok := range tokenize(template) {
		if tok.directive == 0 {
			out.WriteString(tok.literal)
			continue
		}
		value, err := expand(rec, tok.directive, filename)
		if err != nil {
			return "", err
		}
		out.WriteString(value)
	}

	return strings.Join(strings.Fields(out.String()), " "), nil
}

func expand(rec *metadata.SongRecord, directive byte, filename string) (string, error) {
	switch directive {
	case 'f':
		return filename, nil
	case 'a':
		return stringField(rec, metadata.FieldArtist), nil
	case 'c':
		return stringField(rec, metadata.FieldComposer), nil
	case 'b':
		return stringField(rec, metadata.FieldAlbum), nil
	case 'g':
		return stringField(rec, metadata.FieldGenre), nil
	case 'T':
		return stringField(rec, metadata.FieldTitle), nil
	case 't':
		return stringField(rec, metadata.FieldShortTitle), nil
	case 'i':
		return stringField(rec, metadata.FieldISRC), nil
	case 'x':
		// Unknown reads as not explicit.
		if explicit, _ := rec.Bool(metadata.FieldExplicit); explicit {
			return "Explicit", nil
		}
		return "Clean", nil
	case 'k':
		return numberField(rec, metadata.FieldDisc), nil
	case '#':
		return numberField(rec, metadata.FieldTrack), nil
	}

	date, ok := rec.Date()
	if !ok {
		return "", fmt.Errorf("template directive %%%c: %w", directive, ErrNoReleaseDate)
	}
	switch directive {
	case 'Y':
		return fmt.Sprintf("%04d", date.Year), nil
	case 'y':
		return fmt.Sprintf("%02d", date.Year%100), nil
	case 'M':
		return fmt.Sprintf("%02d", date.Month), nil
	case 'm':
		return strconv.Itoa(date.Month), nil
	case 'D':
		return fmt.Sprintf("%02d", date.Day), nil
	case 'd':
		return strconv.Itoa(date.Day), nil
	}
	return "", fmt.Errorf("unknown template directive %%%c", directive)
}

func stringField(rec *metadata.SongRecord, field metadata.Field) string {
	s, _ := rec.String(field)
	return SanitizeName(s)
}

// numberField renders disc and track numbers. Zero means unknown.
func numberField(rec *metadata.SongRecord, field metadata.Field) string {
	n, ok := rec.Int(field)
	if !ok || n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// UsesDirective reports whether template contains directive d, ignoring
// escaped "%%" sequences.
func UsesDirective(template string, d byte) bool {
	for _, tok := range tokenize(template) {
		if tok.directive == d {
			return true
		}
	}
	return false
}
