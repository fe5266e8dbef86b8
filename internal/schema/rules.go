package schema

import "github.com/cory-johannsen/abilitydata/internal/document"

// Well-known keys inspected at every object.
const (
	KeyCondition = "condition"
	KeyMechanics = "mechanics"
	KeyFeatures  = "features"
	KeyName      = "name"
)

// rootProperty is a flag that must carry a fixed JSON type when present.
type rootProperty struct {
	key  string
	want document.Kind
}

// rootProperties are checked in this order on every object.
var rootProperties = []rootProperty{
	{key: "pierce", want: document.Bool},
	{key: "homing", want: document.Bool},
	{key: "knockback", want: document.Bool},
	{key: "interruption", want: document.Bool},
	{key: "stealth", want: document.Object},
	{key: "cleave", want: document.Bool},
}

// RootProperties returns the flag keys in check order.
func RootProperties() []string {
	out := make([]string, len(rootProperties))
	for i, p := range rootProperties {
		out[i] = p.key
	}
	return out
}

// reservedFeatures are names that must be expressed as root properties
// rather than entries of mechanics.features.
var reservedFeatures = map[string]bool{
	"Pierce":       true,
	"Stealth":      true,
	"Cleave":       true,
	"Homing":       true,
	"Knockback":    true,
	"Interruption": true,
}

// IsReservedFeature reports whether name may not appear in a features list.
func IsReservedFeature(name string) bool {
	return reservedFeatures[name]
}
