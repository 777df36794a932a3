// Package font parses the BMFont-style text index consumed by the debug
// text overlay: a line-oriented ASCII format naming one or more glyph-page
// images and the pixel rectangle each character occupies on them.
package font

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/math/fixed"
)

var logger = log.New(os.Stderr, "[font] ", log.LstdFlags)

// Page is one glyph-page image a font references, relative to the font's
// own directory.
type Page struct {
	ID   uint32
	File string
}

// Glyph is a single character's placement on one of the font's pages, plus
// the metrics needed to lay it out relative to its neighbours. Advance and
// the offsets are kept in 26.6 fixed point, matching the convention
// golang.org/x/image/font.Face uses; the HUD divides them back into float
// pixels when it lays out glyph quads.
type Glyph struct {
	ID     rune
	X, Y   uint32
	Width  uint32
	Height uint32

	XOffset  fixed.Int26_6
	YOffset  fixed.Int26_6
	XAdvance fixed.Int26_6

	Page uint32
}

// Index is a fully parsed font index: its reference size, line metrics,
// glyph pages, and the glyphs themselves keyed by codepoint.
type Index struct {
	Size       float32
	LineHeight float32
	Base       float32

	Pages  map[uint32]Page
	Glyphs map[rune]Glyph
}

// Parse reads a BMFont text-format index from r.
func Parse(r io.Reader) (*Index, error) {
	idx := &Index{
		Pages:  make(map[uint32]Page),
		Glyphs: make(map[rune]Glyph),
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, attrs := splitLine(line)
		switch cmd {
		case "info":
			if v, ok := attrs["size"]; ok {
				f, err := strconv.ParseFloat(v, 32)
				if err != nil {
					return nil, fmt.Errorf("font: line %d: bad size %q: %w", lineNo, v, err)
				}
				idx.Size = float32(f)
			}
		case "common":
			if v, ok := attrs["lineHeight"]; ok {
				f, err := strconv.ParseFloat(v, 32)
				if err != nil {
					return nil, fmt.Errorf("font: line %d: bad lineHeight %q: %w", lineNo, v, err)
				}
				idx.LineHeight = float32(f)
			}
			if v, ok := attrs["base"]; ok {
				f, err := strconv.ParseFloat(v, 32)
				if err != nil {
					return nil, fmt.Errorf("font: line %d: bad base %q: %w", lineNo, v, err)
				}
				idx.Base = float32(f)
			}
		case "page":
			id, err := parseUint(attrs, "id")
			if err != nil {
				return nil, fmt.Errorf("font: line %d: %w", lineNo, err)
			}
			idx.Pages[uint32(id)] = Page{ID: uint32(id), File: attrs["file"]}
		case "chars":
			// Only a count hint; glyphs are counted as parsed.
		case "char":
			glyph, err := parseChar(attrs)
			if err != nil {
				return nil, fmt.Errorf("font: line %d: %w", lineNo, err)
			}
			idx.Glyphs[glyph.ID] = glyph
		default:
			logger.Printf("unrecognised font index command %q, skipping", cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("font: scanning index: %w", err)
	}

	return idx, nil
}

func parseChar(attrs map[string]string) (Glyph, error) {
	id, err := parseUint(attrs, "id")
	if err != nil {
		return Glyph{}, err
	}
	x, err := parseUint(attrs, "x")
	if err != nil {
		return Glyph{}, err
	}
	y, err := parseUint(attrs, "y")
	if err != nil {
		return Glyph{}, err
	}
	width, err := parseUint(attrs, "width")
	if err != nil {
		return Glyph{}, err
	}
	height, err := parseUint(attrs, "height")
	if err != nil {
		return Glyph{}, err
	}
	page, err := parseUint(attrs, "page")
	if err != nil {
		return Glyph{}, err
	}

	xoffset, err := parseFloat(attrs, "xoffset")
	if err != nil {
		return Glyph{}, err
	}
	yoffset, err := parseFloat(attrs, "yoffset")
	if err != nil {
		return Glyph{}, err
	}
	xadvance, err := parseFloat(attrs, "xadvance")
	if err != nil {
		return Glyph{}, err
	}

	return Glyph{
		ID:       rune(id),
		X:        uint32(x),
		Y:        uint32(y),
		Width:    uint32(width),
		Height:   uint32(height),
		Page:     uint32(page),
		XOffset:  fixed.Int26_6(xoffset * 64),
		YOffset:  fixed.Int26_6(yoffset * 64),
		XAdvance: fixed.Int26_6(xadvance * 64),
	}, nil
}

func parseUint(attrs map[string]string, key string) (uint64, error) {
	v, ok := attrs[key]
	if !ok {
		return 0, fmt.Errorf("missing required attribute %q", key)
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("attribute %q: %w", key, err)
	}
	return n, nil
}

func parseFloat(attrs map[string]string, key string) (float64, error) {
	v, ok := attrs[key]
	if !ok {
		return 0, fmt.Errorf("missing required attribute %q", key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("attribute %q: %w", key, err)
	}
	return f, nil
}

// splitLine splits one index line into its leading command word and its
// key=value (optionally "quoted") attributes.
func splitLine(line string) (cmd string, attrs map[string]string) {
	attrs = make(map[string]string)

	fields := tokenize(line)
	if len(fields) == 0 {
		return "", attrs
	}
	cmd = fields[0]

	for _, field := range fields[1:] {
		eq := strings.IndexByte(field, '=')
		if eq == -1 {
			continue
		}
		key := field[:eq]
		value := strings.Trim(field[eq+1:], `"`)
		attrs[key] = value
	}
	return cmd, attrs
}

// tokenize splits a line on whitespace, keeping a double-quoted value
// (which may itself contain spaces) as a single token.
func tokenize(line string) []string {
	var tokens []string
	var b strings.Builder
	inQuotes := false

	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			b.WriteRune(r)
		case r == ' ' && !inQuotes:
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return tokens
}
