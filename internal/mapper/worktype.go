package mapper

import "strings"

// WorkTypeResult is the tagged outcome of a work-type lookup: either a known
// internal employment type or the raw unmapped vocabulary value. Callers can
// tell "not applicable" apart from "failed to map".
type WorkTypeResult struct {
	Known bool
	Value string // internal employment type, set when Known
	Raw   string // original ATS vocabulary value
}

// workTypeTable maps the ATS work-type vocabulary to the site's internal
// employment type enum. Keys are normalized: lowercase, single spaces.
var workTypeTable = map[string]string{
	"full time":             "full_time",
	"full-time":             "full_time",
	"permanent / full time": "full_time",
	"part time":             "part_time",
	"part-time":             "part_time",
	"casual":                "casual",
	"contract":              "contract",
	"contract or temp":      "contract",
	"temporary":             "temporary",
}

// MapWorkType looks up an ATS work-type string. Unrecognized values come
// back Unmapped rather than failing the ad.
func MapWorkType(raw string) WorkTypeResult {
	normalized := strings.Join(strings.Fields(strings.ToLower(raw)), " ")

	if value, ok := workTypeTable[normalized]; ok {
		return WorkTypeResult{Known: true, Value: value, Raw: raw}
	}
	return WorkTypeResult{Known: false, Raw: raw}
}
