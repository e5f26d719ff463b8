package api

import (
	"bytes"
	"encoding/json"
)

// The remote API is inconsistent about nesting: payloads arrive bare,
// under data, under data.<entity>, or under data.<entity>[0]. The
// helpers below try each known shape in a fixed order and report
// ErrNoPayload when none matches, instead of silently falling through.

// extractOne locates a single entity object. Probe order: a top-level
// object carrying an identifying "id" field, then data.<entity>[0],
// then data.<entity>, then data itself.
func extractOne(body []byte, entity string) (json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrNoPayload
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, ErrNoPayload
	}
	if _, ok := top["id"]; ok {
		return json.RawMessage(body), nil
	}

	rawData, ok := top["data"]
	if !ok {
		return nil, ErrNoPayload
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(rawData, &data); err == nil {
		if rawEntity, ok := data[entity]; ok {
			// data.<entity>[0] for array-wrapped singletons.
			var list []json.RawMessage
			if err := json.Unmarshal(rawEntity, &list); err == nil {
				if len(list) == 0 {
					return nil, ErrNoPayload
				}
				return list[0], nil
			}
			if isObject(rawEntity) {
				return rawEntity, nil
			}
		}
		if isObject(rawData) && len(data) > 0 {
			return rawData, nil
		}
	}
	return nil, ErrNoPayload
}

// extractMany locates an entity list. Probe order: data.<entity>, data
// itself as an array, then a bare top-level array.
func extractMany(body []byte, entity string) (json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrNoPayload
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err == nil {
		if rawData, ok := top["data"]; ok {
			var data map[string]json.RawMessage
			if err := json.Unmarshal(rawData, &data); err == nil {
				if rawEntity, ok := data[entity]; ok && isArray(rawEntity) {
					return rawEntity, nil
				}
			}
			if isArray(rawData) {
				return rawData, nil
			}
		}
		return nil, ErrNoPayload
	}

	if isArray(json.RawMessage(body)) {
		return json.RawMessage(body), nil
	}
	return nil, ErrNoPayload
}

// extractField pulls a single scalar field, probing top level then data.
// Login uses this for the token.
func extractField(body []byte, field string) (string, error) {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(body, &flat); err != nil {
		return "", ErrNoPayload
	}

	if raw, ok := flat[field]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s, nil
		}
	}
	if rawData, ok := flat["data"]; ok {
		var data map[string]json.RawMessage
		if err := json.Unmarshal(rawData, &data); err == nil {
			if raw, ok := data[field]; ok {
				var s string
				if err := json.Unmarshal(raw, &s); err == nil && s != "" {
					return s, nil
				}
			}
		}
	}
	return "", ErrNoPayload
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
