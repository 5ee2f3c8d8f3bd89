package block

import "fmt"

// Kind identifies the payload shape of a block. Fixed at creation.
type Kind string

const (
	KindText        Kind = "text"
	KindImage       Kind = "image"
	KindButton      Kind = "button"
	KindSpacer      Kind = "spacer"
	KindDivider     Kind = "divider"
	KindSocialLinks Kind = "social_links"
	KindVariable    Kind = "variable"
)

var kinds = []Kind{
	KindText,
	KindImage,
	KindButton,
	KindSpacer,
	KindDivider,
	KindSocialLinks,
	KindVariable,
}

// Kinds returns every supported kind in palette order
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

func (k Kind) Valid() bool {
	for _, known := range kinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseKind converts a wire string into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown block kind %q", ErrInvalidPayload, s)
	}
	return k, nil
}
