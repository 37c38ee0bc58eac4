package scene

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Resources is a table of named constants that documents reference with
// "@name". Values are numbers, booleans or strings.
type Resources struct {
	values map[string]any
}

func NewResources() *Resources {
	return &Resources{
		values: make(map[string]any),
	}
}

// LoadResources reads a YAML resource file.
func LoadResources(path string) (*Resources, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res := NewResources()
	if err := res.Decode(f); err != nil {
		return nil, fmt.Errorf("resources %s: %w", path, err)
	}
	return res, nil
}

// Decode merges a YAML document into the table. Nested mappings are
// flattened, so
//
//	ship:
//	  speed: 50
//
// defines "ship.speed". Later definitions replace earlier ones.
func (r *Resources) Decode(in io.Reader) error {
	var doc map[string]any
	if err := yaml.NewDecoder(in).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	r.merge("", doc)
	return nil
}

func (r *Resources) merge(prefix string, m map[string]any) {
	for k, v := range m {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			r.merge(name, nested)
			continue
		}
		r.values[name] = v
	}
}

// Define sets a single value.
func (r *Resources) Define(name string, value any) {
	r.values[name] = value
}

// Get returns the raw value stored under name.
func (r *Resources) Get(name string) (any, error) {
	v, ok := r.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}
	return v, nil
}

// Number returns a numeric resource as float64.
func (r *Resources) Number(name string) (float64, error) {
	v, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, fmt.Errorf("%w: resource %s is %T, not a number", ErrCoercion, name, v)
}

func (r *Resources) Bool(name string) (bool, error) {
	v, err := r.Get(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: resource %s is %T, not a bool", ErrCoercion, name, v)
	}
	return b, nil
}

func (r *Resources) String(name string) (string, error) {
	v, err := r.Get(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: resource %s is %T, not a string", ErrCoercion, name, v)
	}
	return s, nil
}

// Text returns the textual form of any scalar resource, as substituted into
// expressions.
func (r *Resources) Text(name string) (string, error) {
	v, err := r.Get(name)
	if err != nil {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("%w: resource %s is %T, not a scalar", ErrCoercion, name, v)
}

// Len returns the number of defined names.
func (r *Resources) Len() int {
	return len(r.values)
}
