package mztab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsJSON reports whether the file already carries the JSON shape the
// reader accepts. Anything else (.mzTab, .txt) needs the external
// pre-conversion step first.
func IsJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Read loads and normalizes an mzTab-M JSON file into a model:
// decode (preserving numeric text verbatim), scrub null sentinels,
// construct the typed model, then apply the quirk-correction table.
func Read(path string) (*MzTab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mzTab-M json: %w", err)
	}
	return Parse(data)
}

// Parse builds a normalized model from raw mzTab-M JSON bytes.
func Parse(data []byte) (*MzTab, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode mzTab-M json: %w", err)
	}
	raw = ScrubNullStrings(raw)

	// Round-trip through the scrubbed tree so the typed model never
	// sees a sentinel string. json.Number fields keep their text.
	scrubbed, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-encode scrubbed document: %w", err)
	}

	var m MzTab
	if err := json.Unmarshal(scrubbed, &m); err != nil {
		return nil, fmt.Errorf("build mzTab-M model: %w", err)
	}
	if err := ApplyModelFixes(&m); err != nil {
		return nil, err
	}
	return &m, nil
}
