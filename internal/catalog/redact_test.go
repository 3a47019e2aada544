package catalog

import (
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func viewer(id string) *string { return &id }

func fullContent() Content {
	return Content{
		Description:      strings.Repeat("a", 250),
		Features:         pq.StringArray{"LED 300mm", "IP65", "Solar ready", "GPS sync", "Remote control"},
		Specifications:   datatypes.JSONMap{"voltage": "12V DC", "power": "15W"},
		DocumentPath:     "documents/apill.pdf",
		ImagePath:        "images/apill.jpg",
		MockupImagePath:  "images/apill-mockup.jpg",
		HighResImagePath: "images/apill-hd.jpg",
	}
}

func TestRedact_Anonymous(t *testing.T) {
	in := fullContent()
	out := Redact(in, nil)

	assert.Equal(t, strings.Repeat("a", 100)+Ellipsis, out.Description)
	assert.Equal(t, []string{"LED 300mm", "IP65", "Solar ready"}, []string(out.Features))
	assert.NotNil(t, out.Specifications)
	assert.Empty(t, out.Specifications)
	assert.Empty(t, out.DocumentPath)
	assert.Equal(t, "images/apill-mockup.jpg", out.ImagePath)
	assert.Empty(t, out.MockupImagePath)
	assert.Empty(t, out.HighResImagePath)
}

func TestRedact_Authenticated(t *testing.T) {
	in := fullContent()
	out := Redact(in, viewer("3f1c2a8e-0000-4000-8000-000000000001"))

	assert.Equal(t, in.Description, out.Description)
	assert.Equal(t, in.Features, out.Features)
	assert.Equal(t, in.Specifications, out.Specifications)
	assert.Equal(t, in.DocumentPath, out.DocumentPath)
	assert.Equal(t, "images/apill-hd.jpg", out.ImagePath)
}

func TestRedact_EmptyViewerIsAnonymous(t *testing.T) {
	out := Redact(fullContent(), viewer(""))
	assert.Empty(t, out.Specifications)
	assert.Empty(t, out.DocumentPath)
}

func TestRedact_DescriptionBoundary(t *testing.T) {
	exact := strings.Repeat("x", 100)
	assert.Equal(t, exact, Redact(Content{Description: exact}, nil).Description)

	over := strings.Repeat("x", 101)
	assert.Equal(t, exact+Ellipsis, Redact(Content{Description: over}, nil).Description)

	assert.Equal(t, "", Redact(Content{}, nil).Description)
}

func TestRedact_DescriptionCountsCharactersNotBytes(t *testing.T) {
	// 100 two-byte runes stay whole.
	desc := strings.Repeat("é", 100)
	assert.Equal(t, desc, Redact(Content{Description: desc}, nil).Description)

	out := Redact(Content{Description: strings.Repeat("é", 120)}, nil).Description
	assert.Equal(t, strings.Repeat("é", 100)+Ellipsis, out)
}

func TestRedact_FeatureLimit(t *testing.T) {
	two := Redact(Content{Features: pq.StringArray{"a", "b"}}, nil)
	assert.Len(t, two.Features, 2)

	five := Redact(Content{Features: pq.StringArray{"a", "b", "c", "d", "e"}}, nil)
	assert.Equal(t, []string{"a", "b", "c"}, []string(five.Features))
}

func TestRedact_MissingCollectionsBecomeEmpty(t *testing.T) {
	for _, id := range []*string{nil, viewer("user-1")} {
		out := Redact(Content{}, id)
		assert.NotNil(t, out.Features)
		assert.Empty(t, out.Features)
		assert.NotNil(t, out.Specifications)
		assert.Empty(t, out.Specifications)
	}
}

func TestRedact_ImageFallback(t *testing.T) {
	tests := []struct {
		name   string
		in     Content
		viewer *string
		want   string
	}{
		{"anonymous only high-res", Content{HighResImagePath: "hd.jpg"}, nil, "hd.jpg"},
		{"anonymous standard over high-res", Content{ImagePath: "std.jpg", HighResImagePath: "hd.jpg"}, nil, "std.jpg"},
		{"member only mockup", Content{MockupImagePath: "mock.jpg"}, viewer("u"), "mock.jpg"},
		{"member standard over mockup", Content{ImagePath: "std.jpg", MockupImagePath: "mock.jpg"}, viewer("u"), "std.jpg"},
		{"no image", Content{}, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Redact(tt.in, tt.viewer).ImagePath)
		})
	}
}

func TestRedact_DoesNotModifyInput(t *testing.T) {
	in := fullContent()
	_ = Redact(in, nil)

	assert.Len(t, in.Features, 5)
	assert.Len(t, in.Specifications, 2)
	assert.Equal(t, "documents/apill.pdf", in.DocumentPath)
	assert.Equal(t, "images/apill-hd.jpg", in.HighResImagePath)
}

func TestRedact_Idempotent(t *testing.T) {
	inputs := []Content{
		fullContent(),
		{Description: strings.Repeat("z", 100)},
		{Description: strings.Repeat("z", 101), Features: pq.StringArray{"1", "2", "3", "4"}},
		{ImagePath: "only.jpg"},
		{},
	}
	for _, in := range inputs {
		once := Redact(in, nil)
		twice := Redact(once, nil)
		assert.Equal(t, once, twice)
	}
}

func TestRedactAll_AppliesToEveryItem(t *testing.T) {
	items := []Content{fullContent(), fullContent(), {Specifications: datatypes.JSONMap{"k": "v"}}}
	out := RedactAll(items, nil)

	require.Len(t, out, 3)
	for _, item := range out {
		assert.Empty(t, item.Specifications)
		assert.Empty(t, item.DocumentPath)
		assert.LessOrEqual(t, len(item.Features), 3)
	}
}

func TestPolicy_RulesAreData(t *testing.T) {
	custom := Policy{Rules: []Rule{{Field: FieldDescription, Action: ActionTruncate, Max: 5}}}
	out := custom.Apply(Content{Description: "abcdefgh", DocumentPath: "doc.pdf"})

	assert.Equal(t, "abcde"+Ellipsis, out.Description)
	assert.Equal(t, "doc.pdf", out.DocumentPath)
}
