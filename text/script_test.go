package text

import "testing"

func TestDetectScript(t *testing.T) {
	tests := []struct {
		r    rune
		want Script
	}{
		{'A', ScriptLatin},
		{'1', ScriptCommon},
		{' ', ScriptCommon},
		{'\u0301', ScriptInherited},
		{'Ж', ScriptCyrillic},
		{'λ', ScriptGreek},
		{'ب', ScriptArabic},
		{'ש', ScriptHebrew},
		{'क', ScriptDevanagari},
		{'ก', ScriptThai},
		{'中', ScriptHan},
		{'あ', ScriptHiragana},
		{'한', ScriptHangul},
	}
	for _, tt := range tests {
		if got := DetectScript(tt.r); got != tt.want {
			t.Errorf("DetectScript(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestScriptProperties(t *testing.T) {
	if !ScriptArabic.IsRTL() || !ScriptArabic.RequiresComplexShaping() {
		t.Error("Arabic must be RTL and complex")
	}
	if ScriptLatin.IsRTL() || ScriptLatin.RequiresComplexShaping() {
		t.Error("Latin must be LTR and simple")
	}
	if ScriptHan.RequiresComplexShaping() {
		t.Error("Han must not require complex shaping")
	}
	if !ScriptDevanagari.RequiresComplexShaping() {
		t.Error("Devanagari must require complex shaping")
	}
	if got := Script(9999).String(); got != "Unknown" {
		t.Errorf("String() of out-of-range script = %q", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		s       string
		complex bool
		rtl     bool
		script  Script
	}{
		{"Hello, world", false, false, ScriptLatin},
		{"12 + 3", false, false, ScriptCommon},
		{"中文字体", false, false, ScriptHan},
		{"abc مرحبا", true, true, ScriptArabic},
		{"שלום", true, true, ScriptHebrew},
		{"नमस्ते", true, false, ScriptDevanagari},
		{"", false, false, ScriptCommon},
	}
	for _, tt := range tests {
		c := Classify(tt.s)
		if c.Complex() != tt.complex || c.RTL != tt.rtl || c.Script != tt.script {
			t.Errorf("Classify(%q) = %+v, want complex=%v rtl=%v script=%v", tt.s, c, tt.complex, tt.rtl, tt.script)
		}
		if IsComplex(tt.s) != tt.complex {
			t.Errorf("IsComplex(%q) = %v", tt.s, !tt.complex)
		}
	}
}
