// pkg/api/report_v1.go
package api

// RegionReportV1 is the stable JSON schema for per-region index reports.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RegionReportV1 struct {
	RegionID      int    `json:"region_id"`
	Name          string `json:"name"`
	Chrom         string `json:"chrom"`
	Start         int    `json:"start"`
	End           int    `json:"end"`
	Length        int    `json:"length"`
	Windows       int    `json:"windows"`
	UniqueKeys    int    `json:"unique_keys"`
	DuplicateKeys int    `json:"duplicate_keys"`
	OffTargetHits int    `json:"off_target_hits"`
}
