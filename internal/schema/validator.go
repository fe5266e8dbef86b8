// Package schema enforces the structural rules of the ability data file.
package schema

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/abilitydata/internal/document"
)

// Violation is the first rule breach found in a document.
type Violation struct {
	// Path locates the offending object, e.g. "root.heroes[0].abilities.primary".
	Path string
	// Field is the key whose value broke the rule.
	Field   string
	Message string
}

func (v *Violation) Error() string {
	return v.Message
}

// Validator walks a document depth-first and stops at the first violation.
type Validator struct {
	logger *zap.Logger
}

// NewValidator constructs a Validator.
//
// Postcondition: returns a non-nil Validator; a nil logger is replaced by a no-op logger.
func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{logger: logger}
}

// Validate checks every object in the tree rooted at root.
//
// Precondition: root must be non-nil.
// Postcondition: returns nil when the document satisfies every rule, or the
// first *Violation in pre-order traversal order.
func (v *Validator) Validate(root *document.Node) error {
	w := walker{}
	if err := w.visit(root, document.RootPath); err != nil {
		v.logger.Debug("validation failed", zap.Int("nodes", w.nodes), zap.Error(err))
		return err
	}
	v.logger.Debug("validation passed", zap.Int("nodes", w.nodes))
	return nil
}

type walker struct {
	nodes int
}

func (w *walker) visit(n *document.Node, path string) error {
	w.nodes++
	switch n.Kind() {
	case document.Object:
		if err := checkObject(n, path); err != nil {
			return err
		}
		for _, key := range n.Keys() {
			child, _ := n.Get(key)
			if err := w.visit(child, document.ChildPath(path, key)); err != nil {
				return err
			}
		}
	case document.Array:
		for i, item := range n.Items() {
			if err := w.visit(item, document.IndexPath(path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkObject applies the per-object rules before descending.
func checkObject(obj *document.Node, path string) error {
	if cond, ok := obj.Get(KeyCondition); ok {
		if err := checkCondition(cond, path); err != nil {
			return err
		}
	}

	if mech, ok := obj.Get(KeyMechanics); ok && mech.IsObject() {
		if features, ok := mech.Get(KeyFeatures); ok {
			if err := checkFeatures(features, document.ChildPath(path, KeyMechanics)); err != nil {
				return err
			}
		}
		// Flags on the mechanics object are reported against the owning object's path.
		if err := checkRootProperties(mech, path); err != nil {
			return err
		}
	}

	return checkRootProperties(obj, path)
}

// checkCondition accepts null (unconditional) and an object of any shape,
// including notes-only conditions.
func checkCondition(cond *document.Node, path string) error {
	switch cond.Kind() {
	case document.Null, document.Object:
		return nil
	case document.String:
		s, _ := cond.Str()
		return &Violation{
			Path:    path,
			Field:   KeyCondition,
			Message: fmt.Sprintf("Field 'condition' at %s must be an object, not a string: \"%s\"", path, s),
		}
	default:
		return &Violation{
			Path:    path,
			Field:   KeyCondition,
			Message: fmt.Sprintf("Field 'condition' at %s must be an object or null.", path),
		}
	}
}

// checkFeatures rejects reserved names. Non-array lists, non-object entries
// and entries without a string name are skipped.
func checkFeatures(features *document.Node, path string) error {
	for _, item := range features.Items() {
		nameNode, ok := item.Get(KeyName)
		if !ok {
			continue
		}
		name, ok := nameNode.Str()
		if !ok || !IsReservedFeature(name) {
			continue
		}
		return &Violation{
			Path:    path,
			Field:   KeyFeatures,
			Message: fmt.Sprintf("Feature '%s' at %s must be a root property, not in 'features' list.", name, path),
		}
	}
	return nil
}

func checkRootProperties(obj *document.Node, path string) error {
	for _, prop := range rootProperties {
		val, ok := obj.Get(prop.key)
		if !ok || val.Kind() == prop.want {
			continue
		}
		article := "a boolean"
		if prop.want == document.Object {
			article = "an object"
		}
		return &Violation{
			Path:    path,
			Field:   prop.key,
			Message: fmt.Sprintf("Field '%s' at %s must be %s.", prop.key, path, article),
		}
	}
	return nil
}
