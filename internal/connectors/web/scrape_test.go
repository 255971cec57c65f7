package web

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPDFLinks(t *testing.T) {
	base, err := url.Parse("https://www.federalreserve.gov/newsevents/pressreleases/enf20150105a.htm")
	require.NoError(t, err)

	t.Run("keeps document order and resolves relative links", func(t *testing.T) {
		page := `<html><body>
			<a href="/newsevents/files/enf20150105a1.pdf">Order</a>
			<a href="enf20150105a.htm">Self</a>
			<div><a href="https://cdn.example.com/enf20150105a2.pdf">Exhibit</a></div>
			<a>No href</a>
		</body></html>`

		links, err := ExtractPDFLinks(strings.NewReader(page), base)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://www.federalreserve.gov/newsevents/files/enf20150105a1.pdf",
			"https://cdn.example.com/enf20150105a2.pdf",
		}, links)
	})

	t.Run("keeps duplicates", func(t *testing.T) {
		page := `<a href="a.pdf">1</a><a href="a.pdf">2</a>`

		links, err := ExtractPDFLinks(strings.NewReader(page), base)

		require.NoError(t, err)
		assert.Len(t, links, 2)
	})

	t.Run("returns nothing for a page without PDFs", func(t *testing.T) {
		links, err := ExtractPDFLinks(strings.NewReader(`<p>none</p>`), base)

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("nil base leaves links as written", func(t *testing.T) {
		links, err := ExtractPDFLinks(strings.NewReader(`<a href=" x.pdf ">x</a>`), nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"x.pdf"}, links)
	})
}
