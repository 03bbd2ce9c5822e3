// Package container maps a capability type to one live instance.
//
// A Container is an explicit value built at startup and passed down to
// whoever composes screens. There is no package-level instance.
package container

import (
	"avatar-chat/errors"
	stderrors "errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Resolver is what factories and callers resolve capabilities from.
// Both *Container and the resolver handed to a factory satisfy it.
type Resolver interface {
	resolve(t reflect.Type) (any, error)
}

type entry struct {
	mu       sync.Mutex
	built    bool
	instance any
	factory  func(r Resolver) (any, error)
}

type Container struct {
	mu sync.RWMutex
	// build serializes first-time construction. Factories resolve through
	// their scope, which runs under the build lock already held.
	build   sync.Mutex
	log     *slog.Logger
	entries map[reflect.Type]*entry
	order   []reflect.Type
}

func New(log *slog.Logger) *Container {
	return &Container{
		log:     log,
		entries: make(map[reflect.Type]*entry),
	}
}

// Register binds T to an already built instance, replacing any previous registration.
func Register[T any](c *Container, instance T) {
	c.put(reflect.TypeFor[T](), &entry{built: true, instance: instance})
}

// RegisterFactory binds T to a factory run once, on first resolution.
// It replaces any previous registration.
func RegisterFactory[T any](c *Container, factory func(r Resolver) (T, error)) {
	c.put(reflect.TypeFor[T](), &entry{factory: func(r Resolver) (any, error) {
		return factory(r)
	}})
}

// Resolve returns the singleton bound to T or fails with ErrNotRegistered.
func Resolve[T any](r Resolver) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()
	value, err := r.resolve(t)
	if err != nil {
		return zero, err
	}
	instance, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T", errors.ErrNotRegistered, t, value)
	}
	return instance, nil
}

// MustResolve is Resolve for wiring code where a missing capability is a programming error.
func MustResolve[T any](r Resolver) T {
	instance, err := Resolve[T](r)
	if err != nil {
		panic(err)
	}
	return instance
}

// Has reports whether T is registered, without building it.
func Has[T any](c *Container) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[reflect.TypeFor[T]()]
	return ok
}

// Validate builds every registration in registration order so missing
// capabilities and cycles fail at startup rather than at a call site.
func (c *Container) Validate() error {
	c.mu.RLock()
	types := slices.Clone(c.order)
	c.mu.RUnlock()

	var errs []error
	for _, t := range types {
		if _, err := c.resolve(t); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

func (c *Container) put(t reflect.Type, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[t]; exists {
		c.log.Debug("Replacing capability", "type", t.String())
	} else {
		c.order = append(c.order, t)
	}
	c.entries[t] = e
}

func (c *Container) resolve(t reflect.Type) (any, error) {
	e, err := c.lookup(t)
	if err != nil {
		return nil, err
	}
	if instance, ok := e.get(); ok {
		return instance, nil
	}

	// A whole resolution chain is built by one goroutine at a time, so a cycle
	// always shows up in that chain's stack instead of blocking on another one.
	c.build.Lock()
	defer c.build.Unlock()
	return c.resolveIn(t, nil)
}

// resolveIn runs with the build lock held.
func (c *Container) resolveIn(t reflect.Type, stack []reflect.Type) (any, error) {
	if lo.Contains(stack, t) {
		return nil, fmt.Errorf("%w: %s", errors.ErrDependencyCycle, formatChain(append(slices.Clone(stack), t)))
	}

	e, err := c.lookup(t)
	if err != nil {
		return nil, err
	}
	if instance, ok := e.get(); ok {
		return instance, nil
	}

	instance, err := e.factory(scope{container: c, stack: append(slices.Clone(stack), t)})
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", t, err)
	}
	e.set(instance)
	c.log.Debug("Capability built", "type", t.String())
	return instance, nil
}

func (c *Container) lookup(t reflect.Type) (*entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrNotRegistered, t)
	}
	return e, nil
}

func (e *entry) get() (any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.instance, e.built
}

func (e *entry) set(instance any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.instance, e.built = instance, true
}

// scope is the resolver handed to a factory. It remembers the capabilities
// under construction to detect cycles. A factory must resolve through it and
// not through the Container, which would wait on the build lock it already holds.
type scope struct {
	container *Container
	stack     []reflect.Type
}

func (s scope) resolve(t reflect.Type) (any, error) {
	return s.container.resolveIn(t, s.stack)
}

func formatChain(types []reflect.Type) string {
	return strings.Join(lo.Map(types, func(t reflect.Type, _ int) string {
		return t.String()
	}), " -> ")
}
