package webhooks

// Object is a decoded JSON object. Every accessor tolerates absent or
// mistyped keys so field extraction never aborts a request; reads on a
// nil Object simply miss.
type Object map[string]any

// Object returns the value at key if it is a JSON object, else nil.
func (o Object) Object(key string) Object {
	if v, ok := o[key].(map[string]any); ok {
		return Object(v)
	}
	return nil
}

// String returns the string at key and whether it was present.
func (o Object) String(key string) (string, bool) {
	s, ok := o[key].(string)
	return s, ok
}

// StringOr returns the string at key, or fallback when the key is
// absent or not a string.
func (o Object) StringOr(key, fallback string) string {
	if s, ok := o.String(key); ok {
		return s
	}
	return fallback
}

// StringPtr returns a pointer to the string at key, or nil when absent.
func (o Object) StringPtr(key string) *string {
	if s, ok := o.String(key); ok {
		return &s
	}
	return nil
}

// BoolPtr returns a pointer to the bool at key, or nil when absent.
// Callers rely on the nil case to represent "unanswered".
func (o Object) BoolPtr(key string) *bool {
	if b, ok := o[key].(bool); ok {
		return &b
	}
	return nil
}

// IntOr returns the number at key as an int, or fallback when the key
// is absent or not numeric. encoding/json decodes numbers as float64.
func (o Object) IntOr(key string, fallback int) int {
	if f, ok := o[key].(float64); ok {
		return int(f)
	}
	return fallback
}

// Map returns the raw map at key, or nil when absent or mistyped.
func (o Object) Map(key string) map[string]any {
	if v, ok := o[key].(map[string]any); ok {
		return v
	}
	return nil
}

// Has reports whether key exists, regardless of its value.
func (o Object) Has(key string) bool {
	_, ok := o[key]
	return ok
}
