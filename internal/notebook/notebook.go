// Package notebook rewrites Jupyter notebook files in place, stripping
// or shortening code-cell outputs while leaving every other field of
// the document untouched.
package notebook

import (
	"bytes"
	"encoding/json"
	"os"

	cerrors "github.com/FocuswithJustin/CedarFabric/core/errors"
)

// truncationMarker is appended to output text that was cut short.
const truncationMarker = "… [truncated]"

// rawObject preserves fields we do not interpret.
type rawObject = map[string]json.RawMessage

// StripOutputs removes all outputs and execution counts from the
// notebook's code cells. It reports whether the file was modified.
func StripOutputs(path string) (bool, error) {
	return rewrite(path, func(cell rawObject) bool {
		changed := false
		if raw, ok := cell["outputs"]; ok && !isEmptyArray(raw) {
			cell["outputs"] = json.RawMessage("[]")
			changed = true
		}
		if raw, ok := cell["execution_count"]; ok && string(raw) != "null" {
			cell["execution_count"] = json.RawMessage("null")
			changed = true
		}
		return changed
	})
}

// TruncateOutputs shortens any code-cell output text longer than maxLen
// runes, marking the cut. It reports whether the file was modified.
func TruncateOutputs(path string, maxLen int) (bool, error) {
	return rewrite(path, func(cell rawObject) bool {
		raw, ok := cell["outputs"]
		if !ok {
			return false
		}
		var outputs []rawObject
		if err := json.Unmarshal(raw, &outputs); err != nil {
			return false
		}
		changed := false
		for _, out := range outputs {
			if truncateTextField(out, "text", maxLen) {
				changed = true
			}
			if dataRaw, ok := out["data"]; ok {
				var data rawObject
				if err := json.Unmarshal(dataRaw, &data); err == nil {
					if truncateTextField(data, "text/plain", maxLen) {
						out["data"] = mustMarshal(data)
						changed = true
					}
				}
			}
		}
		if changed {
			cell["outputs"] = mustMarshal(outputs)
		}
		return changed
	})
}

// rewrite loads a notebook, applies fn to each code cell, and writes the
// file back only when something changed.
func rewrite(path string, fn func(cell rawObject) bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, &cerrors.IOError{Operation: "read", Path: path, Err: err}
	}

	var doc rawObject
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, &cerrors.ParseError{Format: "notebook", Input: path, Message: err.Error(), Err: err}
	}
	cellsRaw, ok := doc["cells"]
	if !ok {
		return false, &cerrors.ParseError{Format: "notebook", Input: path, Message: "no cells field"}
	}
	var cells []rawObject
	if err := json.Unmarshal(cellsRaw, &cells); err != nil {
		return false, &cerrors.ParseError{Format: "notebook", Input: path, Message: err.Error(), Err: err}
	}

	changed := false
	for _, cell := range cells {
		var cellType string
		if raw, ok := cell["cell_type"]; ok {
			json.Unmarshal(raw, &cellType)
		}
		if cellType != "code" {
			continue
		}
		if fn(cell) {
			changed = true
		}
	}
	if !changed {
		return false, nil
	}

	doc["cells"] = mustMarshal(cells)
	out, err := marshalNotebook(doc)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return false, &cerrors.IOError{Operation: "write", Path: path, Err: err}
	}
	return true, nil
}

// truncateTextField shortens a string-or-string-list output field.
func truncateTextField(obj rawObject, field string, maxLen int) bool {
	raw, ok := obj[field]
	if !ok {
		return false
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		var single string
		if err := json.Unmarshal(raw, &single); err != nil {
			return false
		}
		lines = []string{single}
	}

	total := 0
	for _, l := range lines {
		total += len([]rune(l))
	}
	if total <= maxLen {
		return false
	}

	kept := make([]string, 0, len(lines))
	budget := maxLen
	for _, l := range lines {
		runes := []rune(l)
		if len(runes) <= budget {
			kept = append(kept, l)
			budget -= len(runes)
			continue
		}
		kept = append(kept, string(runes[:budget])+truncationMarker)
		break
	}
	obj[field] = mustMarshal(kept)
	return true
}

func isEmptyArray(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "[]"
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

// marshalNotebook renders the document with the one-space indentation
// Jupyter itself writes, keeping diffs against tool-managed notebooks
// small.
func marshalNotebook(doc rawObject) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", " ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, &cerrors.ParseError{Format: "notebook", Message: err.Error(), Err: err}
	}
	return buf.Bytes(), nil
}
