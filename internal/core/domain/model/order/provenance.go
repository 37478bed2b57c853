package order

// Source records who last wrote a field. Higher values take precedence:
// a source may overwrite a field last written by itself or by a lower source.
type Source int

const (
	SourceUnknown Source = iota
	SourceExternalCapture
	SourceImport
	SourceManual
)

func getSourceStrings() map[Source]string {
	return map[Source]string{
		SourceExternalCapture: "external-capture",
		SourceImport:          "import",
		SourceManual:          "manual",
	}
}

func (s Source) String() string {
	if str, ok := getSourceStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsValid reports whether s is one of the three writers.
func (s Source) IsValid() bool {
	_, ok := getSourceStrings()[s]
	return ok
}

// ParseSource resolves a wire name; unknown names return SourceUnknown.
func ParseSource(s string) Source {
	for src, name := range getSourceStrings() {
		if name == s {
			return src
		}
	}
	return SourceUnknown
}

// Provenance is the last writer of each field.
type Provenance map[Field]Source

// CanOverwrite reports whether incoming may replace the current value of field.
func (p Provenance) CanOverwrite(field Field, incoming Source) bool {
	current, ok := p[field]
	if !ok {
		return true
	}
	return incoming >= current
}

// Clone returns an independent copy.
func (p Provenance) Clone() Provenance {
	out := make(Provenance, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
