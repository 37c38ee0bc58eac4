package scene

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/plus3/moka/ecs"
)

// EntityFinder looks up live entities by name. *ecs.Runtime implements it.
type EntityFinder interface {
	FindEntity(name string) (*ecs.Entity, error)
}

// PrefabFactory builds a prefab handle from an entity document path.
type PrefabFactory func(path string) (*Prefab, error)

// Resolver turns attribute text into typed field values. Text is one of
//
//	literal      3.5, true, Player, ...
//	reference    @name, a resource (or an entity, for entity fields)
//	expression   $(@width / 2 - 16)
type Resolver struct {
	resources *Resources
	triggers  *Triggers
	entities  EntityFinder
	prefabs   PrefabFactory
	eval      *Evaluator
}

// NewResolver creates a resolver. Any collaborator may be nil, in which case
// attributes needing it fail to resolve.
func NewResolver(resources *Resources, triggers *Triggers, entities EntityFinder, prefabs PrefabFactory) *Resolver {
	if resources == nil {
		resources = NewResources()
	}
	return &Resolver{
		resources: resources,
		triggers:  triggers,
		entities:  entities,
		prefabs:   prefabs,
		eval:      NewEvaluator(),
	}
}

// Resolve converts raw into a value for f. When f is an entity reference
// naming an entity that does not exist yet, Resolve returns deferred=true and
// no error; the caller is expected to retry once the scene is complete.
// Resolve never touches a component.
func (r *Resolver) Resolve(f Field, raw string) (value any, deferred bool, err error) {
	switch {
	case strings.HasPrefix(raw, string(referenceMarker)):
		return r.resolveReference(f, raw[1:])
	case strings.HasPrefix(raw, "$"):
		return r.resolveExpression(f, raw)
	default:
		return r.resolveLiteral(f, raw)
	}
}

func (r *Resolver) resolveReference(f Field, name string) (any, bool, error) {
	if name == "" {
		return nil, false, fmt.Errorf("%w: empty reference", ErrCoercion)
	}

	switch f.kind {
	case KindEntity:
		return r.resolveLiteral(f, name)
	case KindInt:
		n, err := r.resources.Number(name)
		return int(n), false, err
	case KindFloat:
		n, err := r.resources.Number(name)
		return float32(n), false, err
	case KindDouble:
		n, err := r.resources.Number(name)
		return n, false, err
	case KindBool:
		b, err := r.resources.Bool(name)
		return b, false, err
	}

	s, err := r.resources.String(name)
	if err != nil {
		return nil, false, err
	}
	if f.kind == KindString {
		return s, false, nil
	}
	return r.resolveLiteral(f, s)
}

func (r *Resolver) resolveExpression(f Field, raw string) (any, bool, error) {
	if len(raw) < len(expressionOpen)+len(expressionClose) ||
		!strings.HasPrefix(raw, expressionOpen) || !strings.HasSuffix(raw, expressionClose) {
		return nil, false, fmt.Errorf("%w: malformed expression %q", ErrCoercion, raw)
	}
	inner := raw[len(expressionOpen) : len(raw)-len(expressionClose)]

	expanded, err := r.substitute(inner)
	if err != nil {
		return nil, false, err
	}
	v, err := r.eval.Evaluate(expanded)
	if err != nil {
		return nil, false, err
	}
	return r.resolveLiteral(f, formatNumber(v))
}

// substitute replaces every "@name" in expr with the resource's text.
// Longer names go first so "@a" never rewrites part of "@ab".
func (r *Resolver) substitute(expr string) (string, error) {
	refs, err := scanReferences(expr)
	if err != nil {
		return "", err
	}
	sort.SliceStable(refs, func(i, j int) bool {
		return len(refs[i]) > len(refs[j])
	})

	for _, name := range refs {
		text, err := r.resources.Text(name)
		if err != nil {
			return "", err
		}
		if strings.HasPrefix(text, "-") {
			text = "(" + text + ")"
		}
		expr = strings.ReplaceAll(expr, string(referenceMarker)+name, text)
	}
	return expr, nil
}

func (r *Resolver) resolveLiteral(f Field, raw string) (any, bool, error) {
	switch f.kind {
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false, coercionError(f, raw)
		}
		return n, false, nil

	case KindFloat:
		n, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return nil, false, coercionError(f, raw)
		}
		return float32(n), false, nil

	case KindDouble:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, false, coercionError(f, raw)
		}
		return n, false, nil

	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, false, coercionError(f, raw)
		}
		return b, false, nil

	case KindString:
		return raw, false, nil

	case KindEnum:
		v, ok := f.variant(raw)
		if !ok {
			return nil, false, fmt.Errorf("%w: enum %s has no value %q", ErrCoercion, f.typeName, raw)
		}
		return v, false, nil

	case KindCallback:
		if raw == "" {
			return nil, false, fmt.Errorf("%w: trigger for %q is empty", ErrUnknownTrigger, f.name)
		}
		t, err := f.trigger(r.triggers, raw)
		return t, false, err

	case KindEntity:
		if r.entities == nil {
			return nil, true, nil
		}
		e, err := r.entities.FindEntity(raw)
		if errors.Is(err, ecs.ErrEntityNotFound) {
			return nil, true, nil
		}
		if err != nil {
			return nil, false, err
		}
		return e, false, nil

	case KindPrefab:
		if r.prefabs == nil {
			return nil, false, fmt.Errorf("%w: no prefab source for %q", ErrCoercion, raw)
		}
		p, err := r.prefabs(raw)
		return p, false, err
	}

	return nil, false, fmt.Errorf("%w: unsupported field kind %s", ErrCoercion, f.kind)
}

func coercionError(f Field, raw string) error {
	return fmt.Errorf("%w: %q is not a valid %s for %q", ErrCoercion, raw, f.kind, f.name)
}

// formatNumber renders integral values without a fraction so that they can
// feed int fields.
func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
