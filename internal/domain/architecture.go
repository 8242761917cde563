package domain

import "strings"

// Stereotype is the lifecycle tag an architecture model assigns to an element.
type Stereotype string

const (
	StereotypeNew       Stereotype = "NEW"
	StereotypeChanged   Stereotype = "CHANGED"
	StereotypeRemoved   Stereotype = "REMOVED"
	StereotypeKept      Stereotype = "KEPT"
	StereotypeUndefined Stereotype = "UNDEFINED"
)

// ParseStereotype normalizes a raw stereotype string from the architecture
// source. Unknown or missing values map to UNDEFINED, never dropped.
func ParseStereotype(raw string) Stereotype {
	switch Stereotype(strings.ToUpper(strings.TrimSpace(raw))) {
	case StereotypeNew:
		return StereotypeNew
	case StereotypeChanged:
		return StereotypeChanged
	case StereotypeRemoved:
		return StereotypeRemoved
	case StereotypeKept:
		return StereotypeKept
	default:
		return StereotypeUndefined
	}
}

// Element kinds as reported by the architecture source.
const (
	KindApplicationComponent = "application-component"
	KindService              = "service"
	KindArtifact             = "artifact"
)

// ArchitectureElement is one modeled element from the architecture source.
type ArchitectureElement struct {
	Name       string     `json:"name"`
	Kind       string     `json:"kind"`
	Stereotype Stereotype `json:"stereotype"`
}

// IsApplicationComponent reports whether the element's kind denotes a
// deployable application component. Some sources qualify the kind with a
// notation prefix (e.g. "ArchiMate:ApplicationComponent"), so the check is
// a normalized suffix match.
func (e ArchitectureElement) IsApplicationComponent() bool {
	kind := strings.ToLower(e.Kind)
	kind = strings.ReplaceAll(kind, "_", "-")
	if i := strings.LastIndex(kind, ":"); i >= 0 {
		kind = kind[i+1:]
	}
	return kind == KindApplicationComponent || kind == "applicationcomponent"
}
