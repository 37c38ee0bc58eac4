package scene

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/plus3/moka/ecs"
)

// Option configures a Loader.
type Option func(*Loader)

// WithResources sets the resource table documents reference with "@name".
func WithResources(res *Resources) Option {
	return func(l *Loader) {
		l.resources = res
	}
}

// WithTriggers sets the callbacks documents can bind by name.
func WithTriggers(t *Triggers) Option {
	return func(l *Loader) {
		l.triggers = t
	}
}

// WithNamespace sets the fallback namespace for bare component names.
func WithNamespace(namespace string) Option {
	return func(l *Loader) {
		l.namespace = namespace
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithBaseDir sets the directory relative prefab paths are resolved against.
func WithBaseDir(dir string) Option {
	return func(l *Loader) {
		l.baseDir = dir
	}
}

// Loader reads entity documents into a runtime. Entity references that
// cannot be resolved while a document is read are queued and bound by
// ResolvePending, which LoadScene and LoadEntities call once every document
// has been read.
//
// A Loader is not safe for concurrent use.
type Loader struct {
	runtime   *ecs.Runtime
	registry  *Registry
	resources *Resources
	triggers  *Triggers
	namespace string
	logger    *log.Logger
	baseDir   string

	resolver *Resolver
	reader   *reader
	pending  []pendingBinding
	sources  map[string][]byte
}

func NewLoader(rt *ecs.Runtime, registry *Registry, opts ...Option) *Loader {
	l := &Loader{
		runtime:  rt,
		registry: registry,
		sources:  make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.resources == nil {
		l.resources = NewResources()
	}
	if l.triggers == nil {
		l.triggers = NewTriggers()
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard, "", 0)
	}

	l.resolver = NewResolver(l.resources, l.triggers, rt, l.NewPrefab)
	l.reader = newReader(l, &l.pending)
	return l
}

// Resources returns the resource table in use.
func (l *Loader) Resources() *Resources {
	return l.resources
}

type manifest struct {
	XMLName   xml.Name        `xml:"scene"`
	Resources string          `xml:"resources,attr"`
	Namespace string          `xml:"namespace,attr"`
	Entities  []manifestEntry `xml:"entity"`
}

type manifestEntry struct {
	File string `xml:"file,attr"`
	Name string `xml:"name,attr"`
}

// LoadScene reads a scene manifest:
//
//	<scene resources="resources.yaml" namespace="game">
//	    <entity file="player.xml" name="player"/>
//	</scene>
//
// Paths are relative to the manifest. The resource file, when present, is
// merged into the resource table before any entity is read, and the manifest
// namespace replaces the configured fallback namespace. Any error aborts the
// load; entities read before the failure stay in the runtime.
func (l *Loader) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var m manifest
	if err := xml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("%w: scene %s: %v", ErrCorruptDocument, path, err)
	}

	dir := filepath.Dir(path)
	if l.baseDir == "" {
		l.baseDir = dir
	}

	if m.Resources != "" {
		if err := l.mergeResources(filepath.Join(dir, m.Resources)); err != nil {
			return err
		}
	}
	if m.Namespace != "" {
		l.namespace = m.Namespace
	}

	for i, entry := range m.Entities {
		if entry.File == "" {
			return fmt.Errorf("%w: scene %s: entity %d has no file", ErrCorruptDocument, path, i)
		}
		if _, err := l.ReadEntityFile(filepath.Join(dir, entry.File), entry.Name); err != nil {
			return err
		}
	}

	if err := l.ResolvePending(); err != nil {
		return fmt.Errorf("scene %s: %w", path, err)
	}

	l.logger.Printf("[scene] loaded %s: %d entities, %d resources", path, len(m.Entities), l.resources.Len())
	return nil
}

func (l *Loader) mergeResources(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := l.resources.Decode(f); err != nil {
		return fmt.Errorf("resources %s: %w", path, err)
	}
	return nil
}

// LoadEntities reads each document with its own name and then resolves
// pending references.
func (l *Loader) LoadEntities(paths ...string) error {
	for _, path := range paths {
		if _, err := l.ReadEntityFile(path, ""); err != nil {
			return err
		}
	}
	return l.ResolvePending()
}

// ReadEntityFile reads one entity document. A non-empty name replaces the
// name written in the document. Unresolved entity references are queued.
func (l *Loader) ReadEntityFile(path, name string) (*ecs.Entity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	e, err := l.ReadEntity(f, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Printf("[scene] read %s as %q (layer %d)", path, e.Name(), e.Layer())
	return e, nil
}

// ReadEntity reads one entity document from in.
func (l *Loader) ReadEntity(in io.Reader, name string) (*ecs.Entity, error) {
	return l.reader.read(in, name)
}

// ResolvePending binds every queued entity reference, most recently queued
// first. The queue is empty afterwards whether or not binding succeeded.
func (l *Loader) ResolvePending() error {
	queue := l.pending
	l.pending = nil
	return l.resolver.drain(queue)
}

// Pending returns the number of queued entity references.
func (l *Loader) Pending() int {
	return len(l.pending)
}

// Reset returns the reader to its idle state and drops queued references.
func (l *Loader) Reset() {
	l.reader.reset()
	l.pending = nil
}

// NewPrefab returns a handle that spawns copies of the entity document at
// path. Relative paths are resolved against the base directory.
func (l *Loader) NewPrefab(path string) (*Prefab, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty prefab path", ErrCoercion)
	}
	if !filepath.IsAbs(path) && l.baseDir != "" {
		path = filepath.Join(l.baseDir, path)
	}
	return &Prefab{loader: l, path: path}, nil
}

func (l *Loader) source(path string) ([]byte, error) {
	if data, ok := l.sources[path]; ok {
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l.sources[path] = data
	return data, nil
}

func (l *Loader) spawn(path, name string) (*ecs.Entity, error) {
	data, err := l.source(path)
	if err != nil {
		return nil, err
	}

	var queue []pendingBinding
	r := newReader(l, &queue)
	r.forceName = true

	e, err := r.read(bytes.NewReader(data), name)
	if err != nil {
		return nil, fmt.Errorf("prefab %s: %w", path, err)
	}
	if err := l.resolver.drain(queue); err != nil {
		return nil, fmt.Errorf("prefab %s: %w", path, err)
	}
	return e, nil
}

func (r *Resolver) drain(queue []pendingBinding) error {
	for i := len(queue) - 1; i >= 0; i-- {
		b := queue[i]
		v, deferred, err := r.Resolve(b.field, b.raw)
		if err != nil {
			return fmt.Errorf("component %s attribute %q: %w", b.component, b.field.name, err)
		}
		if deferred {
			return fmt.Errorf("%w: component %s attribute %q: no entity named %q",
				ErrUnresolvedReference, b.component, b.field.name, b.raw)
		}
		b.field.set(b.target, v)
	}
	return nil
}
