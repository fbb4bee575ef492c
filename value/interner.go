package value

import "github.com/josharian/intern"

// Symbol is an opaque, small-integer reference into an Interner. Two
// interned strings are equal iff their symbols are equal.
type Symbol uint32

// Interner is a process-wide-for-the-run, deduplicating store mapping
// byte strings to Symbols, with resolution in the reverse direction. It is
// owned by the driver and shared by borrow across compilation and
// execution (section 5 of the spec): only the holder mutates it.
//
// Intern canonicalizes the input through intern.String before assigning a
// symbol, so repeated identical lexemes across the source (and across
// concatenation results at runtime) never retain more than one backing
// byte array.
type Interner struct {
	strings []string
	ids     map[string]Symbol
}

// NewInterner returns an empty Interner ready for use.
func NewInterner() *Interner {
	return &Interner{ids: make(map[string]Symbol)}
}

// Intern returns the Symbol for s, assigning a new one the first time s
// (by content) is seen.
func (in *Interner) Intern(s string) Symbol {
	canon := intern.String(s)
	if sym, ok := in.ids[canon]; ok {
		return sym
	}
	sym := Symbol(len(in.strings))
	in.strings = append(in.strings, canon)
	in.ids[canon] = sym
	return sym
}

// Resolve returns the string content for sym. sym must have come from a
// prior call to Intern on this Interner.
func (in *Interner) Resolve(sym Symbol) string {
	return in.strings[sym]
}
