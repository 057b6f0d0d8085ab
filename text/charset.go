package text

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// Charset is the native encoding of a font slot on devices that do not
// accept Unicode text.
type Charset uint8

// Supported charsets.
const (
	CharsetUnicode Charset = iota
	CharsetWestern
	CharsetCentralEurope
	CharsetCyrillic
	CharsetGreek
	CharsetTurkish
	CharsetHebrew
	CharsetArabic
	CharsetThai
	CharsetShiftJIS
	CharsetGBK
	CharsetBig5
	CharsetHangul
)

type charsetEntry struct {
	name string
	enc  encoding.Encoding
}

// charsets is fixed at init and never modified.
var charsets = [...]charsetEntry{
	CharsetUnicode:       {"Unicode", unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)},
	CharsetWestern:       {"Western", charmap.Windows1252},
	CharsetCentralEurope: {"CentralEurope", charmap.Windows1250},
	CharsetCyrillic:      {"Cyrillic", charmap.Windows1251},
	CharsetGreek:         {"Greek", charmap.Windows1253},
	CharsetTurkish:       {"Turkish", charmap.Windows1254},
	CharsetHebrew:        {"Hebrew", charmap.Windows1255},
	CharsetArabic:        {"Arabic", charmap.Windows1256},
	CharsetThai:          {"Thai", charmap.Windows874},
	CharsetShiftJIS:      {"ShiftJIS", japanese.ShiftJIS},
	CharsetGBK:           {"GBK", simplifiedchinese.GBK},
	CharsetBig5:          {"Big5", traditionalchinese.Big5},
	CharsetHangul:        {"Hangul", korean.EUCKR},
}

func (c Charset) String() string {
	if int(c) < len(charsets) {
		return charsets[c].name
	}
	return "Unknown"
}

// Encoding returns the x/text encoding for the charset.
func (c Charset) Encoding() encoding.Encoding {
	if int(c) < len(charsets) {
		return charsets[c].enc
	}
	return encoding.Nop
}

// Encode converts s to the charset. It fails if any rune is outside the
// charset's repertoire.
func (c Charset) Encode(s string) ([]byte, error) {
	return c.Encoding().NewEncoder().Bytes([]byte(s))
}

// CanEncode reports whether every rune of s is representable.
func (c Charset) CanEncode(s string) bool {
	if c == CharsetUnicode {
		return true
	}
	_, err := c.Encode(s)
	return err == nil
}
