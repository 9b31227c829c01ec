package models

// Visibility is the normalized sharing tier of a content item.
// The database stores four raw strings ("private", "public", "group",
// "groups"); "group" and "groups" are synonyms from before multi-group
// sharing existed. All code branches on the normalized value, never on the
// raw string.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityShared  Visibility = "shared"
	VisibilityPublic  Visibility = "public"
)

// Raw stored values. RawVisibilityGroup is legacy and read-only; new writes
// always use RawVisibilityGroups for the shared tier.
const (
	RawVisibilityPrivate = "private"
	RawVisibilityPublic  = "public"
	RawVisibilityGroup   = "group"
	RawVisibilityGroups  = "groups"
)

// NormalizeVisibility maps a raw stored visibility value to its tier.
// Unknown, empty and NULL values all classify as private: an unrecognized
// value must never widen access.
func NormalizeVisibility(raw *string) Visibility {
	if raw == nil {
		return VisibilityPrivate
	}
	switch *raw {
	case RawVisibilityPublic:
		return VisibilityPublic
	case RawVisibilityGroup, RawVisibilityGroups:
		return VisibilityShared
	default:
		return VisibilityPrivate
	}
}

// RawValue returns the string new code writes for a tier.
func (v Visibility) RawValue() string {
	switch v {
	case VisibilityPublic:
		return RawVisibilityPublic
	case VisibilityShared:
		return RawVisibilityGroups
	default:
		return RawVisibilityPrivate
	}
}

// Valid reports whether v is one of the three tiers.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityShared, VisibilityPublic:
		return true
	}
	return false
}

// SharedRawValues are the raw strings that classify as the shared tier,
// for visibility-membership queries.
func SharedRawValues() []string {
	return []string{RawVisibilityGroup, RawVisibilityGroups}
}
