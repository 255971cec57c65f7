// Package web downloads enforcement documents over HTTP.
//
// A link to a PDF yields a single fragment. A link to an HTML results page
// is scraped for anchors ending in ".pdf", and each PDF is downloaded in
// page order as one fragment of the same document. Relative links are
// resolved against the configured base URL. All requests share one
// token-bucket rate limiter.
package web
