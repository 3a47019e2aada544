package catalog

import "unicode/utf8"

// Ellipsis marks a description that was cut short.
const Ellipsis = "..."

// Field names a gated field of Content.
type Field string

const (
	FieldDescription    Field = "description"
	FieldFeatures       Field = "features"
	FieldSpecifications Field = "specifications"
	FieldDocument       Field = "document_url"
)

// Action is what a Rule does to its field.
type Action int

const (
	// ActionTruncate keeps the first Max characters of a text field.
	ActionTruncate Action = iota
	// ActionLimit keeps the first Max entries of a list field.
	ActionLimit
	// ActionClear empties the field.
	ActionClear
)

// Rule is one row of a redaction table.
type Rule struct {
	Field  Field
	Action Action
	Max    int
}

// Policy is the full set of transformations applied for one kind of viewer.
type Policy struct {
	Rules []Rule
	// ImagePreference lists image variants best first. The first populated
	// one becomes the single image exposed to the viewer.
	ImagePreference []ImageVariant
}

// AnonymousRules reduce the gated content for visitors without a session.
var AnonymousRules = []Rule{
	{Field: FieldDescription, Action: ActionTruncate, Max: 100},
	{Field: FieldFeatures, Action: ActionLimit, Max: 3},
	{Field: FieldSpecifications, Action: ActionClear},
	{Field: FieldDocument, Action: ActionClear},
}

var (
	AnonymousPolicy = Policy{
		Rules:           AnonymousRules,
		ImagePreference: []ImageVariant{VariantMockup, VariantStandard, VariantHighRes},
	}
	MemberPolicy = Policy{
		ImagePreference: []ImageVariant{VariantHighRes, VariantStandard, VariantMockup},
	}
)

// PolicyFor picks the policy for a viewer. A nil or empty viewer id is an
// anonymous visitor.
func PolicyFor(viewerID *string) Policy {
	if viewerID == nil || *viewerID == "" {
		return AnonymousPolicy
	}
	return MemberPolicy
}

// Redact returns the view of c that the given viewer may see. It does not
// modify c, and applying it again to its own anonymous output changes
// nothing.
func Redact(c Content, viewerID *string) Content {
	return PolicyFor(viewerID).Apply(c)
}

// RedactAll applies Redact to every item of a listing.
func RedactAll(items []Content, viewerID *string) []Content {
	policy := PolicyFor(viewerID)
	out := make([]Content, len(items))
	for i, item := range items {
		out[i] = policy.Apply(item)
	}
	return out
}

// Apply runs the policy over a copy of c.
func (p Policy) Apply(c Content) Content {
	out := c.clone()
	for _, rule := range p.Rules {
		rule.apply(&out)
	}

	resolved := ""
	for _, v := range p.ImagePreference {
		if img := out.image(v); img != "" {
			resolved = img
			break
		}
	}
	out.ImagePath = resolved
	out.MockupImagePath = ""
	out.HighResImagePath = ""
	return out
}

func (r Rule) apply(c *Content) {
	switch r.Field {
	case FieldDescription:
		switch r.Action {
		case ActionTruncate:
			c.Description = truncate(c.Description, r.Max)
		case ActionClear:
			c.Description = ""
		}
	case FieldFeatures:
		switch r.Action {
		case ActionLimit:
			if len(c.Features) > r.Max {
				c.Features = c.Features[:r.Max]
			}
		case ActionClear:
			c.Features = c.Features[:0]
		}
	case FieldSpecifications:
		if r.Action == ActionClear {
			for k := range c.Specifications {
				delete(c.Specifications, k)
			}
		}
	case FieldDocument:
		if r.Action == ActionClear {
			c.DocumentPath = ""
		}
	}
}

// truncate cuts s to max characters and marks the cut. Strings already
// within the limit come back unchanged.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + Ellipsis
}
