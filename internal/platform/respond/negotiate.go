package respond

import "github.com/danielgtaylor/huma/v2/negotiation"

// problemFormats are the media types a problem body can be negotiated to.
// JSON is listed first so it wins ties.
var problemFormats = []string{
	"application/json",
	"application/problem+json",
	"application/cbor",
	"application/problem+cbor",
}

// prefersCBOR reports whether a problem body should be CBOR-encoded. Matching
// is exact, as in huma's own response negotiation, so wildcards and unknown
// types fall back to JSON.
func prefersCBOR(accept string) bool {
	switch negotiation.SelectQValue(accept, problemFormats) {
	case "application/cbor", "application/problem+cbor":
		return true
	}
	return false
}
