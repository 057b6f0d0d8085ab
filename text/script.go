package text

import "github.com/go-text/typesetting/language"

// Script represents a Unicode script.
type Script uint32

// Script constants.
const (
	// ScriptCommon is used for punctuation, digits and symbols shared across scripts.
	ScriptCommon Script = iota
	// ScriptInherited is used for combining marks.
	ScriptInherited
	ScriptLatin
	ScriptCyrillic
	ScriptGreek
	ScriptArmenian
	ScriptGeorgian
	ScriptArabic
	ScriptHebrew
	ScriptSyriac
	ScriptThaana
	ScriptNko
	ScriptHan
	ScriptHiragana
	ScriptKatakana
	ScriptHangul
	ScriptDevanagari
	ScriptBengali
	ScriptGurmukhi
	ScriptGujarati
	ScriptOriya
	ScriptTamil
	ScriptTelugu
	ScriptKannada
	ScriptMalayalam
	ScriptSinhala
	ScriptThai
	ScriptLao
	ScriptTibetan
	ScriptMyanmar
	ScriptKhmer
	ScriptMongolian
	ScriptEthiopic
	// ScriptUnknown is any script without its own constant.
	ScriptUnknown
)

type scriptInfo struct {
	name    string
	tag     language.Script
	complex bool
	rtl     bool
}

var scripts = [...]scriptInfo{
	ScriptCommon:     {"Common", language.Common, false, false},
	ScriptInherited:  {"Inherited", language.Inherited, false, false},
	ScriptLatin:      {"Latin", language.Latin, false, false},
	ScriptCyrillic:   {"Cyrillic", language.Cyrillic, false, false},
	ScriptGreek:      {"Greek", language.Greek, false, false},
	ScriptArmenian:   {"Armenian", language.Armenian, false, false},
	ScriptGeorgian:   {"Georgian", language.Georgian, false, false},
	ScriptArabic:     {"Arabic", language.Arabic, true, true},
	ScriptHebrew:     {"Hebrew", language.Hebrew, true, true},
	ScriptSyriac:     {"Syriac", language.Syriac, true, true},
	ScriptThaana:     {"Thaana", language.Thaana, true, true},
	ScriptNko:        {"Nko", language.Nko, true, true},
	ScriptHan:        {"Han", language.Han, false, false},
	ScriptHiragana:   {"Hiragana", language.Hiragana, false, false},
	ScriptKatakana:   {"Katakana", language.Katakana, false, false},
	ScriptHangul:     {"Hangul", language.Hangul, false, false},
	ScriptDevanagari: {"Devanagari", language.Devanagari, true, false},
	ScriptBengali:    {"Bengali", language.Bengali, true, false},
	ScriptGurmukhi:   {"Gurmukhi", language.Gurmukhi, true, false},
	ScriptGujarati:   {"Gujarati", language.Gujarati, true, false},
	ScriptOriya:      {"Oriya", language.Oriya, true, false},
	ScriptTamil:      {"Tamil", language.Tamil, true, false},
	ScriptTelugu:     {"Telugu", language.Telugu, true, false},
	ScriptKannada:    {"Kannada", language.Kannada, true, false},
	ScriptMalayalam:  {"Malayalam", language.Malayalam, true, false},
	ScriptSinhala:    {"Sinhala", language.Sinhala, true, false},
	ScriptThai:       {"Thai", language.Thai, true, false},
	ScriptLao:        {"Lao", language.Lao, true, false},
	ScriptTibetan:    {"Tibetan", language.Tibetan, true, false},
	ScriptMyanmar:    {"Myanmar", language.Myanmar, true, false},
	ScriptKhmer:      {"Khmer", language.Khmer, true, false},
	ScriptMongolian:  {"Mongolian", language.Mongolian, true, false},
	ScriptEthiopic:   {"Ethiopic", language.Ethiopic, false, false},
	ScriptUnknown:    {"Unknown", language.Unknown, false, false},
}

var byTag = func() map[language.Script]Script {
	m := make(map[language.Script]Script, len(scripts))
	for s, info := range scripts {
		m[info.tag] = Script(s)
	}
	return m
}()

// String returns the name of the script.
func (s Script) String() string {
	if int(s) < len(scripts) {
		return scripts[s].name
	}
	return "Unknown"
}

// IsRTL reports whether the script is written right-to-left.
func (s Script) IsRTL() bool {
	return int(s) < len(scripts) && scripts[s].rtl
}

// RequiresComplexShaping reports whether the script needs contextual
// shaping (joining, reordering or mark positioning) to render correctly.
func (s Script) RequiresComplexShaping() bool {
	return int(s) < len(scripts) && scripts[s].complex
}

// Tag returns the ISO 15924 script used by the shaping engine.
func (s Script) Tag() language.Script {
	if int(s) < len(scripts) {
		return scripts[s].tag
	}
	return language.Unknown
}

// DetectScript returns the Unicode script of r.
func DetectScript(r rune) Script {
	if s, ok := byTag[language.LookupScript(r)]; ok {
		return s
	}
	return ScriptUnknown
}
