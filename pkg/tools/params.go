package tools

import "fmt"

// JSON numbers decode as float64; these helpers coerce loosely-typed params
// into what the client methods expect.

func intParam(params map[string]any, key string) (int, error) {
	v, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("missing required parameter %q", key)
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("parameter %q must be a number", key)
	}
}

func optionalInt(params map[string]any, key string) (int, error) {
	if _, ok := params[key]; !ok {
		return 0, nil
	}
	return intParam(params, key)
}

func stringParam(params map[string]any, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string", key)
	}
	return s, nil
}

func optionalString(params map[string]any, key string) (string, error) {
	if _, ok := params[key]; !ok {
		return "", nil
	}
	return stringParam(params, key)
}

func optionalBool(params map[string]any, key string) (bool, error) {
	v, ok := params[key]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("parameter %q must be a boolean", key)
	}
	return b, nil
}

func optionalStringSlice(params map[string]any, key string) ([]string, error) {
	v, ok := params[key]
	if !ok {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("parameter %q must be an array of strings", key)
	}
	out := make([]string, len(raw))
	for i, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q must be an array of strings", key)
		}
		out[i] = s
	}
	return out, nil
}

func optionalIntSlice(params map[string]any, key string) ([]int, error) {
	v, ok := params[key]
	if !ok {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("parameter %q must be an array of numbers", key)
	}
	ids := make([]int, len(raw))
	for i, item := range raw {
		n, ok := item.(float64)
		if !ok {
			return nil, fmt.Errorf("parameter %q must be an array of numbers", key)
		}
		ids[i] = int(n)
	}
	return ids, nil
}
