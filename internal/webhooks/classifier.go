package webhooks

// Format identifies which of the two supported payload shapes a body uses.
type Format int

const (
	// FormatLegacy is the flat pre-envelope shape, optionally with a
	// top-level "lead" sub-object.
	FormatLegacy Format = iota

	// FormatStructured is the enveloped shape carrying payload.lead.
	FormatStructured
)

func (f Format) String() string {
	if f == FormatStructured {
		return "structured"
	}
	return "legacy"
}

// Classify routes a decoded body to one of the two shapes. The check is
// purely structural: a "payload" object containing a "lead" key means
// structured, anything else is legacy. Classification never fails;
// bodies with a malformed structured envelope still classify as
// structured and are handled by per-field optional access downstream.
func Classify(body Object) Format {
	if payload := body.Object("payload"); payload != nil && payload.Has("lead") {
		return FormatStructured
	}
	return FormatLegacy
}
