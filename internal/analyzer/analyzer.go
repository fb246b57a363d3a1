// Package analyzer infers a class model from a parsed JSON document.
package analyzer

import (
	"fmt"

	"github.com/mcncl/cstyper/internal/config"
	"github.com/mcncl/cstyper/internal/errors"
	"github.com/mcncl/cstyper/internal/models"
	"github.com/mcncl/cstyper/internal/naming"
)

// slot is a sub-class whose position in discovery order is fixed before its
// members are known.
type slot struct {
	def  models.ClassDefinition
	done bool
}

// Analyzer walks a JSON value tree and synthesizes one class per object shape.
type Analyzer struct {
	// config holds configuration settings for analysis
	config *config.Config
	// names tracks class names handed out during one Infer call
	names    *naming.Registry
	slots    []slot
	warnings []string
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(config.NewConfig())
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Analyzer{config: cfg}
}

// Warnings returns the diagnostics recorded by the last Infer call.
func (a *Analyzer) Warnings() []string {
	return a.warnings
}

// Infer builds the class model for root, which must be a JSON object.
// Nothing is kept between calls; on error no partial model is returned.
func (a *Analyzer) Infer(root models.JSONValue, rootClassName string) (models.GeneratedModel, error) {
	a.names = naming.NewRegistry()
	a.slots = nil
	a.warnings = nil

	if root.Kind != models.Object {
		return models.GeneratedModel{}, errors.NewInferenceError(
			fmt.Sprintf("JSON root is %s, expected an object", root.Kind),
			errors.ErrUnsupportedRootKind,
		)
	}

	if rootClassName == "" {
		rootClassName = config.DefaultClassName
	}
	rootName := a.names.Unique(naming.ClassName(rootClassName))

	members, err := a.inferMembers(root, 1)
	if err != nil {
		return models.GeneratedModel{}, err
	}

	model := models.GeneratedModel{
		Root:       models.ClassDefinition{Name: rootName, Members: members},
		SubClasses: make([]models.ClassDefinition, 0, len(a.slots)),
	}
	for _, s := range a.slots {
		model.SubClasses = append(model.SubClasses, s.def)
	}
	return model, nil
}

// inferMembers types every member of obj in key order. depth is the nesting
// depth of obj itself.
func (a *Analyzer) inferMembers(obj models.JSONValue, depth int) ([]models.Property, error) {
	members := make([]models.Property, 0, len(obj.Members))
	for _, m := range obj.Members {
		t, err := a.inferType(m.Value, m.Key, depth+1)
		if err != nil {
			return nil, err
		}
		members = append(members, models.Property{Key: m.Key, Type: t})
	}
	return members, nil
}

// inferType types a single value. seed names any class the value needs and
// depth is the value's nesting depth when it is a container.
func (a *Analyzer) inferType(v models.JSONValue, seed string, depth int) (models.InferredType, error) {
	switch v.Kind {
	case models.Object:
		if err := a.checkDepth(depth); err != nil {
			return models.InferredType{}, err
		}
		return a.inferObject(v, seed, depth)
	case models.Array:
		if err := a.checkDepth(depth); err != nil {
			return models.InferredType{}, err
		}
		return a.inferArray(v, seed, depth)
	case models.String:
		return models.PrimitiveType(classifyString(v.Str)), nil
	case models.Number:
		return models.PrimitiveType(classifyNumber(v)), nil
	case models.Bool:
		return models.PrimitiveType(models.Boolean), nil
	default:
		return models.PrimitiveType(models.AnyObject), nil
	}
}

func (a *Analyzer) checkDepth(depth int) error {
	limit := a.config.Inference.MaxDepth
	if limit > 0 && depth > limit {
		return errors.NewInferenceError(
			fmt.Sprintf("nesting depth %d exceeds the limit of %d", depth, limit),
			errors.ErrTooDeep,
		)
	}
	return nil
}

// inferObject synthesizes a class for obj. The class takes its place in
// discovery order before any of its own nested classes.
func (a *Analyzer) inferObject(obj models.JSONValue, seed string, depth int) (models.InferredType, error) {
	base := naming.ClassName(seed)
	conflict := a.names.Taken(base)
	if conflict && a.config.Inference.NameCollisions == config.CollisionError && !a.config.Inference.ReuseIdenticalClasses {
		return models.InferredType{}, duplicateNameError(base)
	}

	name := a.names.Unique(base)
	index := len(a.slots)
	a.slots = append(a.slots, slot{def: models.ClassDefinition{Name: name}})

	members, err := a.inferMembers(obj, depth)
	if err != nil {
		return models.InferredType{}, err
	}
	candidate := models.ClassDefinition{Name: name, Members: members}

	if a.config.Inference.ReuseIdenticalClasses {
		if existing, ok := a.findEquivalent(candidate, index); ok {
			// A reused class added no classes of its own, so its slot is last.
			a.slots = a.slots[:index]
			a.names.Release(name)
			return models.ClassRef(existing), nil
		}
		if conflict && a.config.Inference.NameCollisions == config.CollisionError {
			return models.InferredType{}, duplicateNameError(base)
		}
	}

	a.slots[index] = slot{def: candidate, done: true}
	return models.ClassRef(name), nil
}

// findEquivalent looks for a finished class with the same members as c.
func (a *Analyzer) findEquivalent(c models.ClassDefinition, skip int) (string, bool) {
	for i, s := range a.slots {
		if i == skip || !s.done {
			continue
		}
		if s.def.Equivalent(c) {
			return s.def.Name, true
		}
	}
	return "", false
}

// inferArray types an array by its first element. Elements of other kinds
// are not reconciled; they only produce a warning.
func (a *Analyzer) inferArray(arr models.JSONValue, seed string, depth int) (models.InferredType, error) {
	if len(arr.Items) == 0 {
		return models.CollectionOf(models.PrimitiveType(models.AnyObject)), nil
	}

	a.checkMixed(arr, seed)

	elem, err := a.inferType(arr.Items[0], a.itemSeed(seed), depth+1)
	if err != nil {
		return models.InferredType{}, err
	}
	return models.CollectionOf(elem), nil
}

// itemSeed names the element class of an array stored under key.
func (a *Analyzer) itemSeed(key string) string {
	if a.config.Inference.SingularizeItemNames {
		plural := naming.ToPascalCase(key)
		if singular := naming.Singularize(plural); singular != plural {
			return singular
		}
	}
	return key + "Item"
}

func (a *Analyzer) checkMixed(arr models.JSONValue, key string) {
	seen := models.Null
	for _, item := range arr.Items {
		switch {
		case item.Kind == models.Null:
		case seen == models.Null:
			seen = item.Kind
		case item.Kind != seen:
			a.warnings = append(a.warnings, fmt.Sprintf(
				"array %q mixes %s and %s values; typed from the first element", key, seen, item.Kind))
			return
		}
	}
}

func duplicateNameError(name string) error {
	return errors.NewInferenceError(
		fmt.Sprintf("class name %q is produced by more than one object", name),
		errors.ErrDuplicateClassName,
	)
}
