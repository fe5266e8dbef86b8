// Package document loads the ability data file into a read-only tree that
// preserves the key order of the source JSON.
package document

// Kind identifies the JSON type held by a Node.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Object
	Array
)

var kindNames = [...]string{
	Null:   "null",
	Bool:   "boolean",
	Number: "number",
	String: "string",
	Object: "object",
	Array:  "array",
}

// String returns the JSON name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Node is one value of a parsed document. Objects remember the order in
// which their keys first appeared.
type Node struct {
	kind   Kind
	text   string // string value, or the raw literal of a number
	truth  bool
	keys   []string
	fields map[string]*Node
	items  []*Node
}

// Kind returns the JSON type of n.
func (n *Node) Kind() Kind { return n.kind }

func (n *Node) IsNull() bool   { return n.kind == Null }
func (n *Node) IsBool() bool   { return n.kind == Bool }
func (n *Node) IsString() bool { return n.kind == String }
func (n *Node) IsObject() bool { return n.kind == Object }
func (n *Node) IsArray() bool  { return n.kind == Array }

// Str returns the value of a string node and whether n is a string.
func (n *Node) Str() (string, bool) {
	if n.kind != String {
		return "", false
	}
	return n.text, true
}

// Bool returns the value of a boolean node and whether n is a boolean.
func (n *Node) Bool() (bool, bool) {
	if n.kind != Bool {
		return false, false
	}
	return n.truth, true
}

// Raw returns the literal text of a number node.
func (n *Node) Raw() string {
	if n.kind == Number {
		return n.text
	}
	return ""
}

// Get returns the value stored under key. It reports false when n is not an
// object or the key is absent.
func (n *Node) Get(key string) (*Node, bool) {
	if n.kind != Object {
		return nil, false
	}
	v, ok := n.fields[key]
	return v, ok
}

// Has reports whether n is an object carrying key.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Keys returns the object's keys in document order. The slice must not be modified.
func (n *Node) Keys() []string {
	if n.kind != Object {
		return nil
	}
	return n.keys
}

// Items returns the array's elements in order. The slice must not be modified.
func (n *Node) Items() []*Node {
	if n.kind != Array {
		return nil
	}
	return n.items
}

// Len returns the number of keys of an object or elements of an array.
func (n *Node) Len() int {
	switch n.kind {
	case Object:
		return len(n.keys)
	case Array:
		return len(n.items)
	}
	return 0
}

// Each calls fn for every key/value pair of an object in document order,
// stopping early when fn returns false.
func (n *Node) Each(fn func(key string, value *Node) bool) {
	for _, k := range n.Keys() {
		if !fn(k, n.fields[k]) {
			return
		}
	}
}

// set inserts or replaces key. A repeated key keeps its first position and
// takes the latest value.
func (n *Node) set(key string, value *Node) {
	if _, ok := n.fields[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = value
}

func newObject() *Node {
	return &Node{kind: Object, fields: make(map[string]*Node)}
}
