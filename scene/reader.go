package scene

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/vmath"
)

const (
	tagEntity = "entity"

	attrName     = "name"
	attrLayer    = "layer"
	attrGroup    = "group"
	attrPosition = "position"
	attrRotation = "rotation"
	attrSize     = "size"
)

var (
	layerField = Field{name: attrLayer, kind: KindInt}
	coordField = Field{name: "coordinate", kind: KindFloat}
)

type readerState int

const (
	stateInit readerState = iota
	stateInEntity
	stateClosed
)

func (s readerState) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateInEntity:
		return "entity"
	case stateClosed:
		return "closed"
	}
	return fmt.Sprintf("readerState(%d)", int(s))
}

// pendingBinding is an entity reference that could not be resolved while its
// document was read.
type pendingBinding struct {
	component string
	field     Field
	target    ecs.Component
	raw       string
}

// reader turns one entity document into an entity. It is idle in the closed
// state; a failed read leaves it where it stopped until it is reset.
type reader struct {
	loader *Loader
	state  readerState
	entity *ecs.Entity

	// forceName makes the name passed to read win even when it is empty.
	forceName bool
	pending   *[]pendingBinding
}

func newReader(l *Loader, pending *[]pendingBinding) *reader {
	return &reader{
		loader:  l,
		state:   stateClosed,
		pending: pending,
	}
}

func (r *reader) reset() {
	r.state = stateClosed
	r.entity = nil
}

func (r *reader) read(in io.Reader, name string) (*ecs.Entity, error) {
	if r.state != stateClosed {
		return nil, fmt.Errorf("%w: reader is in %s state, not closed", ErrCorruptDocument, r.state)
	}
	r.state = stateInit
	r.entity = nil

	dec := xml.NewDecoder(in)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := r.start(t, name); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if t.Name.Local == tagEntity {
				r.state = stateClosed
			}
		}
	}

	switch r.state {
	case stateInit:
		return nil, fmt.Errorf("%w: no entity tag", ErrCorruptDocument)
	case stateInEntity:
		return nil, fmt.Errorf("%w: unterminated entity", ErrCorruptDocument)
	}
	return r.entity, nil
}

func (r *reader) start(t xml.StartElement, name string) error {
	tag := t.Name.Local
	switch r.state {
	case stateClosed:
		return fmt.Errorf("%w: unexpected <%s> after the entity was closed", ErrCorruptDocument, tag)
	case stateInit:
		if tag != tagEntity {
			return fmt.Errorf("%w: expected <%s>, found <%s>", ErrCorruptDocument, tagEntity, tag)
		}
		return r.openEntity(attributes(t.Attr), name)
	default:
		return r.readComponent(tag, attributes(t.Attr))
	}
}

func (r *reader) openEntity(attrs map[string]string, name string) error {
	resolver := r.loader.resolver

	if name == "" && !r.forceName {
		name = attrs[attrName]
	}

	layer := 0
	if raw, ok := attrs[attrLayer]; ok {
		v, _, err := resolver.Resolve(layerField, raw)
		if err != nil {
			return fmt.Errorf("entity layer: %w", err)
		}
		layer = v.(int)
	}

	var (
		position, size       vmath.Vec2
		rotation             float32
		hasPos, hasSz, hasRt bool
		err                  error
	)
	if raw, ok := attrs[attrPosition]; ok {
		if position, err = r.readPair(attrPosition, raw); err != nil {
			return err
		}
		hasPos = true
	}
	if raw, ok := attrs[attrRotation]; ok {
		v, _, err := resolver.Resolve(coordField, strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("entity rotation: %w", err)
		}
		rotation = v.(float32)
		hasRt = true
	}
	if raw, ok := attrs[attrSize]; ok {
		if size, err = r.readPair(attrSize, raw); err != nil {
			return err
		}
		hasSz = true
	}

	e, err := r.loader.runtime.NewEntity(name, layer)
	if err != nil {
		return err
	}

	tr := e.Transform()
	if hasPos {
		tr.SetPosition(position.X, position.Y)
	}
	if hasRt {
		tr.SetRotation(rotation)
	}
	if hasSz {
		tr.SetSize(size.X, size.Y)
	}
	e.SetGroup(attrs[attrGroup])

	r.entity = e
	r.state = stateInEntity
	return nil
}

// readPair parses "x, y" where each coordinate is any attribute value.
func (r *reader) readPair(attr, raw string) (vmath.Vec2, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return vmath.Zero, fmt.Errorf("%w: entity %s %q is not an x,y pair", ErrCoercion, attr, raw)
	}

	var xy [2]float32
	for i, part := range parts {
		v, _, err := r.loader.resolver.Resolve(coordField, strings.TrimSpace(part))
		if err != nil {
			return vmath.Zero, fmt.Errorf("entity %s: %w", attr, err)
		}
		xy[i] = v.(float32)
	}
	return vmath.V(xy[0], xy[1]), nil
}

type boundValue struct {
	field Field
	value any
}

func (r *reader) readComponent(tag string, attrs map[string]string) error {
	l := r.loader
	ct, err := l.registry.Lookup(tag, l.namespace)
	if err != nil {
		return err
	}

	for _, f := range ct.Fields {
		if _, ok := attrs[f.name]; !ok && f.required {
			return fmt.Errorf("%w: component %s requires the %q attribute", ErrMissingAttribute, ct.Name, f.name)
		}
	}

	c := ct.New()
	bound := make([]boundValue, 0, len(attrs))
	var deferred []pendingBinding
	for _, f := range ct.Fields {
		raw, ok := attrs[f.name]
		if !ok {
			continue
		}
		v, later, err := l.resolver.Resolve(f, raw)
		if err != nil {
			return fmt.Errorf("component %s attribute %q: %w", ct.Name, f.name, err)
		}
		if later {
			deferred = append(deferred, pendingBinding{
				component: ct.Name,
				field:     f,
				target:    c,
				raw:       raw,
			})
			continue
		}
		bound = append(bound, boundValue{field: f, value: v})
	}

	for name := range attrs {
		if _, ok := ct.Field(name); !ok {
			l.logger.Printf("[scene] %s: ignoring unknown attribute %q", ct.Name, name)
		}
	}

	for _, b := range bound {
		b.field.set(c, b.value)
	}
	r.entity.AddComponent(c)
	*r.pending = append(*r.pending, deferred...)
	return nil
}

func attributes(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}
