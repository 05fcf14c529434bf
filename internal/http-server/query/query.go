package query

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

func String(r *http.Request, key string) (val string, present bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	return raw, raw != ""
}

func StringAny(r *http.Request, keys ...string) (val string, present bool) {
	for _, k := range keys {
		if v, ok := String(r, k); ok {
			return v, true
		}
	}
	return "", false
}

func Bool(r *http.Request, key string) (val bool, present bool, err error) {
	raw, ok := String(r, key)
	if !ok {
		return false, false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, true, fmt.Errorf("%s must be boolean", key)
	}
	return b, true, nil
}
