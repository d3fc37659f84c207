package budget

// Record is any resource with an id and a display name. Accounts, payees
// and categories all satisfy it, so a single lookup serves them all.
type Record interface {
	Key() string
	Label() string
}

// Find returns the record with the given id, if present.
func Find[T Record](id string, items []T) (T, bool) {
	for _, it := range items {
		if it.Key() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// LabelOf returns the display name of the record with the given id, or the
// empty string when the id does not resolve. An absent record is a
// display-only degradation, never an error.
func LabelOf[T Record](id string, items []T) string {
	it, ok := Find(id, items)
	if !ok {
		return ""
	}
	return it.Label()
}
