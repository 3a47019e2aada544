// Package catalog holds what products, projects and certificates have in
// common: the gated content block and the rules that reduce it for
// anonymous visitors.
package catalog

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Content is the gated part of a catalog entity. Entities embed it next to
// their public fields (name, category, short description, thumbnail).
type Content struct {
	Description      string            `gorm:"type:text"`
	Features         pq.StringArray    `gorm:"type:text[]"`
	Specifications   datatypes.JSONMap `gorm:"type:jsonb"`
	DocumentPath     string            `gorm:"type:varchar(255)"`
	ImagePath        string            `gorm:"type:varchar(255)"`
	MockupImagePath  string            `gorm:"type:varchar(255)"`
	HighResImagePath string            `gorm:"type:varchar(255)"`
}

// clone returns a copy of c that shares no slice or map with it. Missing
// collections come back empty rather than nil.
func (c Content) clone() Content {
	out := c
	out.Features = make(pq.StringArray, len(c.Features))
	copy(out.Features, c.Features)
	out.Specifications = make(datatypes.JSONMap, len(c.Specifications))
	for k, v := range c.Specifications {
		out.Specifications[k] = v
	}
	return out
}

// ImageVariant names one of the stored image fields.
type ImageVariant int

const (
	VariantMockup ImageVariant = iota
	VariantStandard
	VariantHighRes
)

func (c Content) image(v ImageVariant) string {
	switch v {
	case VariantMockup:
		return c.MockupImagePath
	case VariantHighRes:
		return c.HighResImagePath
	default:
		return c.ImagePath
	}
}

// Media holds freshly stored media paths. Empty fields mean "no upload".
type Media struct {
	Image    string
	Mockup   string
	HighRes  string
	Document string
}

// Empty reports whether no file was stored.
func (m Media) Empty() bool {
	return m.Image == "" && m.Mockup == "" && m.HighRes == "" && m.Document == ""
}

// ReplaceMedia sets every non-empty path of m on c and returns the paths it
// displaced, so the caller can delete the old files.
func (c *Content) ReplaceMedia(m Media) []string {
	var displaced []string
	swap := func(dst *string, src string) {
		if src == "" {
			return
		}
		if *dst != "" && *dst != src {
			displaced = append(displaced, *dst)
		}
		*dst = src
	}
	swap(&c.ImagePath, m.Image)
	swap(&c.MockupImagePath, m.Mockup)
	swap(&c.HighResImagePath, m.HighRes)
	swap(&c.DocumentPath, m.Document)
	return displaced
}

// Paths lists every stored media path of c.
func (c Content) Paths() []string {
	var out []string
	for _, p := range []string{c.ImagePath, c.MockupImagePath, c.HighResImagePath, c.DocumentPath} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
