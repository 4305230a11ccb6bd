// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"panelidx/pkg/api"
)

const textHeader = "region_id\tname\tchrom\tstart\tend\tlength\twindows\tunique_keys\tduplicate_keys\toff_target_hits"

// WriteText prints one TSV line per region.
func WriteText(w io.Writer, rows []api.RegionReportV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, textHeader); err != nil {
			return err
		}
	}
	for _, r := range rows {
		_, err := fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			r.RegionID, r.Name, r.Chrom,
			r.Start, r.End, r.Length, r.Windows,
			r.UniqueKeys, r.DuplicateKeys, r.OffTargetHits,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
