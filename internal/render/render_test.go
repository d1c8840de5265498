package render

import (
	"html/template"
	"testing"
	"testing/fstest"

	"storefront_poc/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParsesEmbeddedTemplates(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, name := range []string{
		"catalog/detail/seen-partial",
		"catalog/session/seen-body",
		"checkout/summary-body",
		"checkout/summary-header",
		"supplier/detail-body",
	} {
		assert.Contains(t, r.templates, name)
	}
}

func TestRenderSeenPartial(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	html, err := r.Render("catalog/detail/seen-partial", map[string]any{
		"Product": &pkg.Product{
			ID:     "nb001",
			Label:  "MacBook <Pro>",
			Media:  []pkg.MediaItem{{Type: "default", Preview: "/media/nb001-s.jpg"}},
			Prices: []pkg.PriceItem{{Value: 1999, Currency: "EUR"}},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, html, `data-product-id="nb001"`)
	assert.Contains(t, html, "MacBook &lt;Pro&gt;")
	assert.Contains(t, html, "1999.00 EUR")
	assert.Contains(t, html, "/media/nb001-s.jpg")
}

func TestRenderKeepsTrustedFragments(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	html, err := r.Render("catalog/session/seen-body", map[string]any{
		"T":     func(key string, args ...any) string { return key },
		"Items": []template.HTML{"<b>p1</b>"},
	})
	require.NoError(t, err)
	assert.Contains(t, html, "<li class=\"seen-item\"><b>p1</b></li>")
	assert.Contains(t, html, "Last seen")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	_, err = r.Render("catalog/missing", nil)
	assert.ErrorContains(t, err, "not found")
}

func TestNewFromFSRejectsBrokenTemplate(t *testing.T) {
	_, err := NewFromFS(fstest.MapFS{
		"broken.html": {Data: []byte("{{if}")},
	})
	assert.ErrorContains(t, err, "broken.html")
}
