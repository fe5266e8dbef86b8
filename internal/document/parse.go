package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Parse converts raw JSON bytes into a Node tree.
//
// Postcondition: Returns the root Node, or a *SyntaxError when data is not valid JSON.
func Parse(data []byte) (*Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, &SyntaxError{Detail: diagnose(data)}
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) *Node {
	switch r.Type {
	case gjson.Null:
		return &Node{kind: Null}
	case gjson.False:
		return &Node{kind: Bool, truth: false}
	case gjson.True:
		return &Node{kind: Bool, truth: true}
	case gjson.Number:
		return &Node{kind: Number, text: r.Raw}
	case gjson.String:
		return &Node{kind: String, text: r.Str}
	}

	if r.IsArray() {
		n := &Node{kind: Array, items: []*Node{}}
		r.ForEach(func(_, v gjson.Result) bool {
			n.items = append(n.items, fromResult(v))
			return true
		})
		return n
	}

	n := newObject()
	r.ForEach(func(k, v gjson.Result) bool {
		n.set(k.String(), fromResult(v))
		return true
	})
	return n
}

// diagnose produces a human-readable reason for a document gjson rejected.
// gjson only reports validity, so the standard decoder supplies the detail.
func diagnose(data []byte) string {
	var v any
	err := json.Unmarshal(data, &v)
	if err == nil {
		return "malformed document"
	}

	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		offset := int(syn.Offset)
		if offset > 0 {
			offset-- // Offset points past the offending byte.
		}
		line, col := position(data, offset)
		return fmt.Sprintf("%s: line %d column %d (char %d)", syn.Error(), line, col, offset)
	}
	return err.Error()
}

// position maps a byte offset to a 1-based line and column.
func position(data []byte, offset int) (int, int) {
	if offset > len(data) {
		offset = len(data)
	}
	head := data[:offset]
	line := bytes.Count(head, []byte{'\n'}) + 1
	col := offset - bytes.LastIndexByte(head, '\n')
	return line, col
}
