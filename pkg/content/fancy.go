package content

import (
	"errors"
	"strings"
	"unicode"
)

// Style names returned by Fancy.
const (
	StyleBold         = "bold"
	StyleItalic       = "italic"
	StyleBoldItalic   = "boldItalic"
	StyleScript       = "script"
	StyleDoubleStruck = "doubleStruck"
	StyleMonospace    = "monospace"
	StyleFullwidth    = "fullwidth"
	StyleCircled      = "circled"
	StyleSmallCaps    = "smallCaps"
)

type alphabet struct {
	upper, lower, digit rune
	// exceptions maps letters that live outside the contiguous block.
	exceptions map[rune]rune
}

// Mathematical Alphanumeric Symbols block offsets.
var alphabets = map[string]alphabet{
	StyleBold:       {upper: 0x1D400, lower: 0x1D41A, digit: 0x1D7CE},
	StyleItalic:     {upper: 0x1D434, lower: 0x1D44E, exceptions: map[rune]rune{'h': 0x210E}},
	StyleBoldItalic: {upper: 0x1D468, lower: 0x1D482},
	StyleScript: {upper: 0x1D49C, lower: 0x1D4B6, exceptions: map[rune]rune{
		'B': 0x212C, 'E': 0x2130, 'F': 0x2131, 'H': 0x210B, 'I': 0x2110,
		'L': 0x2112, 'M': 0x2133, 'R': 0x211B, 'e': 0x212F, 'g': 0x210A, 'o': 0x2134,
	}},
	StyleDoubleStruck: {upper: 0x1D538, lower: 0x1D552, digit: 0x1D7D8, exceptions: map[rune]rune{
		'C': 0x2102, 'H': 0x210D, 'N': 0x2115, 'P': 0x2119, 'Q': 0x211A, 'R': 0x211D, 'Z': 0x2124,
	}},
	StyleMonospace: {upper: 0x1D670, lower: 0x1D68A, digit: 0x1D7F6},
	StyleFullwidth: {upper: 0xFF21, lower: 0xFF41, digit: 0xFF10},
	StyleCircled:   {upper: 0x24B6, lower: 0x24D0, digit: 0x2460, exceptions: map[rune]rune{'0': 0x24EA}},
}

var smallCaps = map[rune]rune{
	'a': 'ᴀ', 'b': 'ʙ', 'c': 'ᴄ', 'd': 'ᴅ', 'e': 'ᴇ', 'f': 'ꜰ', 'g': 'ɢ', 'h': 'ʜ', 'i': 'ɪ',
	'j': 'ᴊ', 'k': 'ᴋ', 'l': 'ʟ', 'm': 'ᴍ', 'n': 'ɴ', 'o': 'ᴏ', 'p': 'ᴘ', 'q': 'ǫ', 'r': 'ʀ',
	's': 's', 't': 'ᴛ', 'u': 'ᴜ', 'v': 'ᴠ', 'w': 'ᴡ', 'x': 'x', 'y': 'ʏ', 'z': 'ᴢ',
}

// Fancy renders text in each supported Unicode style. Characters without a
// styled counterpart are kept as they are.
func Fancy(text string) (map[string]string, error) {
	if text == "" {
		return nil, errors.New("text is empty")
	}
	out := make(map[string]string, len(alphabets)+1)
	for name, a := range alphabets {
		out[name] = strings.Map(a.convert, text)
	}
	out[StyleSmallCaps] = strings.Map(func(r rune) rune {
		if sc, ok := smallCaps[unicode.ToLower(r)]; ok {
			return sc
		}
		return r
	}, text)
	return out, nil
}

func (a alphabet) convert(r rune) rune {
	if e, ok := a.exceptions[r]; ok {
		return e
	}
	switch {
	case r >= 'A' && r <= 'Z' && a.upper != 0:
		return a.upper + (r - 'A')
	case r >= 'a' && r <= 'z' && a.lower != 0:
		return a.lower + (r - 'a')
	case r >= '0' && r <= '9' && a.digit != 0:
		if a.digit == 0x2460 {
			// circled digits start at one
			return a.digit + (r - '1')
		}
		return a.digit + (r - '0')
	}
	return r
}
