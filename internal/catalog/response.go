package catalog

import "strings"

// ContentResponse is the serialized form of an already redacted Content.
type ContentResponse struct {
	Description    string                 `json:"description"`
	Features       []string               `json:"features"`
	Specifications map[string]interface{} `json:"specifications"`
	DocumentURL    string                 `json:"document_url"`
	ImageURL       string                 `json:"image_url"`
}

// ToContentResponse serializes content returned by Redact.
func ToContentResponse(c Content, mediaBaseURL string) ContentResponse {
	features := []string(c.Features)
	if features == nil {
		features = []string{}
	}
	specs := map[string]interface{}(c.Specifications)
	if specs == nil {
		specs = map[string]interface{}{}
	}
	return ContentResponse{
		Description:    c.Description,
		Features:       features,
		Specifications: specs,
		DocumentURL:    MediaURL(mediaBaseURL, c.DocumentPath),
		ImageURL:       MediaURL(mediaBaseURL, c.ImagePath),
	}
}

// AdminContentResponse exposes every stored field for the back office.
type AdminContentResponse struct {
	Description     string                 `json:"description"`
	Features        []string               `json:"features"`
	Specifications  map[string]interface{} `json:"specifications"`
	DocumentURL     string                 `json:"document_url"`
	ImageURL        string                 `json:"image_url"`
	MockupImageURL  string                 `json:"mockup_image_url"`
	HighResImageURL string                 `json:"high_res_image_url"`
}

// ToAdminContentResponse serializes unredacted content.
func ToAdminContentResponse(c Content, mediaBaseURL string) AdminContentResponse {
	full := c.clone()
	return AdminContentResponse{
		Description:     full.Description,
		Features:        full.Features,
		Specifications:  full.Specifications,
		DocumentURL:     MediaURL(mediaBaseURL, full.DocumentPath),
		ImageURL:        MediaURL(mediaBaseURL, full.ImagePath),
		MockupImageURL:  MediaURL(mediaBaseURL, full.MockupImagePath),
		HighResImageURL: MediaURL(mediaBaseURL, full.HighResImagePath),
	}
}

// MediaURL turns a stored relative media path into a URL. Paths are served
// under /media on the API host unless a public base URL is configured.
func MediaURL(baseURL, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/media/" + strings.TrimLeft(path, "/")
}

// ContentRequest carries the editable text of a Content block.
type ContentRequest struct {
	Description    string                 `json:"description" binding:"max=20000"`
	Features       []string               `json:"features" binding:"max=50,dive,max=300"`
	Specifications map[string]interface{} `json:"specifications"`
}

// ApplyTo copies the request onto c, leaving media paths untouched.
func (r ContentRequest) ApplyTo(c *Content) {
	c.Description = strings.TrimSpace(r.Description)
	c.Features = make([]string, 0, len(r.Features))
	for _, f := range r.Features {
		if f = strings.TrimSpace(f); f != "" {
			c.Features = append(c.Features, f)
		}
	}
	c.Specifications = make(map[string]interface{}, len(r.Specifications))
	for k, v := range r.Specifications {
		c.Specifications[k] = v
	}
}
