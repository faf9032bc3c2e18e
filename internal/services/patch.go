package services

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// filterPatch enforces an entity's update allow-list. Unknown keys are an
// error rather than being dropped, so callers cannot smuggle columns past
// the service layer.
func filterPatch(patch map[string]interface{}, allowList map[string]bool) (map[string]interface{}, error) {
	if len(patch) == 0 {
		return nil, NewValidationError("No fields to update")
	}
	var rejected []string
	fields := make(map[string]interface{}, len(patch))
	for key, value := range patch {
		if !allowList[key] {
			rejected = append(rejected, key)
			continue
		}
		fields[key] = value
	}
	if len(rejected) > 0 {
		sort.Strings(rejected)
		return nil, NewValidationError("Fields not updatable: %v", rejected)
	}
	return fields, nil
}

// toInt64 accepts the numeric shapes JSON decoding can produce.
func toInt64(raw interface{}) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("not an integer: %v", v)
		}
		return int64(v), nil
	case json.Number:
		return v.Int64()
	default:
		return 0, fmt.Errorf("not a number: %T", raw)
	}
}
