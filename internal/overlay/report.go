package overlay

import "encoding/json"

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ReplacedDetail records one successfully overlaid region. Coordinates are the
// clamped pixel box the decision was made on.
type ReplacedDetail struct {
	Page              int        `json:"page"`
	BlockIndex        int        `json:"block_index"`
	Type              BlockType  `json:"type"`
	BBoxPx            [4]int     `json:"bbox_px"`
	DimensionsPx      Dimensions `json:"dimensions_px"`
	ReplacementReason Reason     `json:"replacement_reason"`
}

// Report aggregates replacement statistics for a whole render pass.
// total_blocks == replaced_blocks + skipped_blocks holds at all times.
type Report struct {
	TotalBlocks     int              `json:"total_blocks"`
	ReplacedBlocks  int              `json:"replaced_blocks"`
	SkippedBlocks   int              `json:"skipped_blocks"`
	SkipReasons     map[Reason]int   `json:"skip_reasons"`
	ReplacedDetails []ReplacedDetail `json:"replaced_details"`
}

// NewReport returns an empty report with non-nil collections so the JSON form
// serializes {} and [] instead of null.
func NewReport() *Report {
	return &Report{
		SkipReasons:     make(map[Reason]int),
		ReplacedDetails: make([]ReplacedDetail, 0),
	}
}

// AddSkip counts one skipped region under the given reason.
func (r *Report) AddSkip(reason Reason) {
	r.TotalBlocks++
	r.SkippedBlocks++
	r.SkipReasons[reason]++
}

// AddReplaced counts one overlaid region and appends its detail record.
// Details keep page order, then block order within the page.
func (r *Report) AddReplaced(d ReplacedDetail) {
	r.TotalBlocks++
	r.ReplacedBlocks++
	r.ReplacedDetails = append(r.ReplacedDetails, d)
}

// MarshalIndent serializes the report deterministically: struct fields keep
// declaration order and map keys sort lexicographically.
func (r *Report) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
