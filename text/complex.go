package text

import "golang.org/x/text/unicode/bidi"

// Complexity classifies a string for the text pipeline.
type Complexity struct {
	// Script is the first script in the string needing complex shaping,
	// or the first strong script when none does.
	Script Script
	// Shaping is set when some rune belongs to a complex script.
	Shaping bool
	// RTL is set when some rune has strong right-to-left bidi class.
	RTL bool
}

// Complex reports whether the string needs layout before drawing.
func (c Complexity) Complex() bool {
	return c.Shaping || c.RTL
}

// Classify inspects s for complex scripts and right-to-left runs.
func Classify(s string) Complexity {
	var c Complexity
	strong := ScriptCommon
	for _, r := range s {
		sc := DetectScript(r)
		if strong == ScriptCommon && sc != ScriptCommon && sc != ScriptInherited {
			strong = sc
		}
		if sc.RequiresComplexShaping() && !c.Shaping {
			c.Shaping = true
			c.Script = sc
		}
		if !c.RTL {
			props, _ := bidi.LookupRune(r)
			switch props.Class() {
			case bidi.R, bidi.AL:
				c.RTL = true
			}
		}
	}
	if !c.Shaping {
		c.Script = strong
	}
	return c
}

// IsComplex reports whether s needs layout before drawing.
func IsComplex(s string) bool {
	return Classify(s).Complex()
}
