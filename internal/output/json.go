// internal/output/json.go
package output

import (
	"io"

	"panelidx/internal/jsonutil"
	"panelidx/pkg/api"
)

// WriteJSON writes a single JSON array of v1 region reports (pretty-indented).
func WriteJSON(w io.Writer, rows []api.RegionReportV1) error {
	if rows == nil {
		rows = []api.RegionReportV1{}
	}
	return jsonutil.EncodePretty(w, rows)
}
