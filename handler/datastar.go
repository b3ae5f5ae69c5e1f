package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DataStarAcceptHeader is the Accept header value that indicates a DataStar request
	DataStarAcceptHeader = "text/event-stream"

	// DataStarQueryParam is the query parameter used by DataStar for signals
	DataStarQueryParam = "datastar"
)

const (
	PatchOuter   = datastar.ElementPatchModeOuter   // Morphs element by id (default)
	PatchRemove  = datastar.ElementPatchModeRemove  // Remove element
	PatchPrepend = datastar.ElementPatchModePrepend // Prepend inside element
)

// IsDataStar reports whether r was issued by DataStar.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	if r.URL.Query().Has(DataStarQueryParam) {
		return true
	}
	return r.Header.Get("Datastar-Request") == "true"
}
