package llm

import (
	"bytes"
	"encoding/json"
)

var (
	fenceJSON  = []byte("```json")
	fencePlain = []byte("```")
)

// stripFence removes exactly one layer of Markdown code fence from raw
// model output. Both "```json ... ```" and "``` ... ```" are recognized;
// anything else is returned trimmed but otherwise untouched. A second,
// nested fence is left in place so that it fails parsing downstream.
func stripFence(raw []byte) []byte {
	out := bytes.TrimSpace(raw)
	if !bytes.HasSuffix(out, fencePlain) {
		return out
	}
	switch {
	case bytes.HasPrefix(out, fenceJSON) && len(out) >= len(fenceJSON)+len(fencePlain):
		out = out[len(fenceJSON) : len(out)-len(fencePlain)]
	case bytes.HasPrefix(out, fencePlain) && len(out) >= 2*len(fencePlain):
		out = out[len(fencePlain) : len(out)-len(fencePlain)]
	default:
		return out
	}
	return bytes.TrimSpace(out)
}

// cleanContent strips a fence from provider text and returns it as JSON.
func cleanContent(text string) json.RawMessage {
	return json.RawMessage(stripFence([]byte(text)))
}
