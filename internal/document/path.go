package document

import "strconv"

// RootPath names the top of the document in diagnostics.
const RootPath = "root"

// ChildPath extends parent with an object key. Keys are not escaped, so a key
// containing a dot is indistinguishable from nesting.
func ChildPath(parent, key string) string {
	return parent + "." + key
}

// IndexPath extends parent with an array index.
func IndexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}
