package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkordes/park-tracker/internal/domain"
)

// Key precedence for each normalized field. For coordinates and the source
// id the first key present with a non-null value wins, even if it then
// fails to convert.
var (
	nameKeys     = []string{"name", "NAME"}
	stateKeys    = []string{"state", "STATES"}
	latKeys      = []string{"lat", "latitude", "LATITUDE"}
	lonKeys      = []string{"lon", "lng", "longitude", "LONGITUDE"}
	sourceIDKeys = []string{"id", "PARK_CODE", "park_code"}
)

// Normalize maps one raw listing entry onto an ImportRecord.
// Unparseable or out-of-range coordinates are left nil.
func Normalize(entry map[string]any) domain.ImportRecord {
	rec := domain.ImportRecord{
		Name:  firstTruthy(entry, nameKeys),
		State: domain.StringPtr(firstTruthy(entry, stateKeys)),
	}
	if v, ok := firstPresent(entry, latKeys); ok {
		rec.Lat = toFloat(v, 90)
	}
	if v, ok := firstPresent(entry, lonKeys); ok {
		rec.Lon = toFloat(v, 180)
	}
	if v, ok := firstPresent(entry, sourceIDKeys); ok {
		rec.SourceID = domain.StringPtr(toString(v))
	}
	return rec
}

// firstTruthy returns the first key whose value renders as a non-empty string.
func firstTruthy(entry map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := entry[k]; ok && v != nil {
			if s := strings.TrimSpace(toString(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstPresent(entry map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := entry[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func toFloat(v any, limit float64) *float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < -limit || f > limit {
		return nil
	}
	return &f
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
