package wordpress

import (
	"net/url"
	"strconv"
	"strings"
)

func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func joinStrings(vs []string) string {
	return strings.Join(vs, ",")
}

func setInts(q url.Values, key string, vs []int) {
	if len(vs) == 0 {
		return
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	q.Set(key, strings.Join(parts, ","))
}
