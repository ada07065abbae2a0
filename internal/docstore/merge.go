package docstore

import (
	"encoding/json"
	"fmt"
	"strings"
)

// mergeDocs overlays src onto dst and returns the result. Nested objects
// are merged recursively; any other value (including arrays) replaces the
// existing value wholesale. dst is not modified.
func mergeDocs(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		srcObj, srcIsObj := v.(map[string]any)
		dstObj, dstIsObj := out[k].(map[string]any)
		if srcIsObj && dstIsObj {
			out[k] = mergeDocs(dstObj, srcObj)
			continue
		}
		out[k] = v
	}
	return out
}

// mergeRaw merges a JSON-encoded src document onto a JSON-encoded dst
// document. An empty dst is treated as an empty object.
func mergeRaw(dst, src json.RawMessage) (json.RawMessage, error) {
	dstDoc := map[string]any{}
	if len(dst) > 0 {
		if err := json.Unmarshal(dst, &dstDoc); err != nil {
			return nil, fmt.Errorf("parse existing document: %w", err)
		}
	}
	srcDoc := map[string]any{}
	if err := json.Unmarshal(src, &srcDoc); err != nil {
		return nil, fmt.Errorf("parse incoming document: %w", err)
	}
	merged, err := json.Marshal(mergeDocs(dstDoc, srcDoc))
	if err != nil {
		return nil, fmt.Errorf("encode merged document: %w", err)
	}
	return merged, nil
}

// applyIncrements adds each delta to the numeric field addressed by its
// dotted path, creating missing objects and treating missing fields as 0.
// Returns an error if a path segment exists but is not an object, or the
// leaf exists but is not a number.
func applyIncrements(doc map[string]any, deltas map[string]int64) error {
	for field, delta := range deltas {
		if err := incrementField(doc, field, delta); err != nil {
			return err
		}
	}
	return nil
}

func incrementField(doc map[string]any, field string, delta int64) error {
	parts := strings.Split(field, ".")
	cur := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p]
		if !ok {
			child := map[string]any{}
			cur[p] = child
			cur = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("field %q: %q is not an object", field, p)
		}
		cur = child
	}

	leaf := parts[len(parts)-1]
	switch v := cur[leaf].(type) {
	case nil:
		cur[leaf] = float64(delta)
	case float64:
		cur[leaf] = v + float64(delta)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}
		cur[leaf] = f + float64(delta)
	default:
		return fmt.Errorf("field %q is not numeric", field)
	}
	return nil
}
