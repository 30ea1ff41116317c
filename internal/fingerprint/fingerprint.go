// Package fingerprint builds deterministic cache keys for page
// operations. A key is the operation name joined to a base36 hash of
// the canonical JSON form of the request parameters.
package fingerprint

import (
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// allowList is the full, ordered set of parameters that participate in
// a fingerprint. Order is fixed so the canonical form never depends on
// map iteration.
var allowList = []string{
	"target", "width", "height", "fullPage", "type", "quality",
	"wait", "selector", "model", "format", "prompt", "includeScreenshot",
}

// Build derives the cache key "<operation>:<hash>" from an operation
// name and the request parameters. Parameters outside the allow list
// are ignored; absent ones are omitted rather than defaulted, so two
// requests differing only in an unset parameter share a key.
func Build(operation string, params map[string]string) string {
	var b strings.Builder
	b.WriteString(`{"operation":`)
	b.WriteString(quote(operation))
	for _, key := range allowList {
		val, ok := params[key]
		if !ok {
			continue
		}
		b.WriteByte(',')
		b.WriteString(quote(key))
		b.WriteByte(':')
		b.WriteString(quote(val))
	}
	b.WriteByte('}')

	return operation + ":" + strconv.FormatUint(uint64(hash(b.String())), 36)
}

// hash is the djb2 string hash over code points, truncated to 32 bits.
func hash(s string) uint32 {
	h := uint32(5381)
	for _, r := range s {
		h = h*33 + uint32(r)
	}
	return h
}

// quote renders a JSON string literal with standard escaping.
func quote(s string) string {
	out, err := sonic.MarshalString(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return out
}
