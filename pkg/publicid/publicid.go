// Package publicid resolves externally supplied entity identifiers.
//
// Profiles, listings and conversations are addressable from URLs either by
// their canonical UUID primary key or by a short code assigned by the store.
// Classification is total: every input maps to exactly one lookup predicate,
// "not found" is left to the store.
package publicid

import (
	"regexp"
	"strings"
)

// FieldID / FieldShortID are the column names the predicate matches against.
const (
	FieldID      = "id"
	FieldShortID = "short_id"
)

// ShortIDLength 短码回退长度（UUID 去连字符后取前缀）
const ShortIDLength = 12

// RFC-4122 shape: version nibble 1-5, variant nibble 8/9/a/b.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// Predicate is an equality condition to apply against the backing store.
// The resolver never executes the query itself.
type Predicate struct {
	Field string
	Value string
}

// Classify maps a URL path segment to a lookup predicate. UUID-shaped input
// (case-insensitive, correct version and variant nibbles) resolves by primary
// key with the value lowercased; everything else, including near-miss
// UUID-shaped strings, resolves as a short code verbatim. Never fails.
func Classify(publicID string) Predicate {
	if uuidPattern.MatchString(publicID) {
		return Predicate{Field: FieldID, Value: strings.ToLower(publicID)}
	}
	return Predicate{Field: FieldShortID, Value: publicID}
}

// IsUUID reports whether the input classifies as a primary-key lookup.
func IsUUID(publicID string) bool {
	return uuidPattern.MatchString(publicID)
}

// DeriveShortID derives the fallback short code for an entity that has no
// assigned one: lowercase hex digits of the UUID, hyphens stripped, first 12
// characters. Deterministic; used only when exposing a canonical public id,
// never during lookup of user input.
func DeriveShortID(id string) string {
	s := strings.ReplaceAll(strings.ToLower(id), "-", "")
	if len(s) > ShortIDLength {
		s = s[:ShortIDLength]
	}
	return s
}
