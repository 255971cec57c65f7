// Package connectors wires regulator table resolvers together.
//
// Each subpackage knows one regulator's table layout: which column holds
// the lookup key, the link and the institution name. The Registry maps
// regulator names to resolvers so the lookup service stays
// regulator-agnostic. Document sources live in the web and local
// subpackages.
package connectors
