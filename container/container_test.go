package container

import (
	"avatar-chat/errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type greeter interface {
	Greet() string
}

type english struct{ name string }

func (e english) Greet() string { return "hello " + e.name }

type clock struct{ greeter greeter }

func TestContainer_Resolve_Registered_Instance(t *testing.T) {
	req := require.New(t)
	c := New(slog.Default())

	// Given an instance registered under an interface
	Register[greeter](c, english{name: "bob"})

	// When resolving it
	g, err := Resolve[greeter](c)

	// Then the same instance comes back
	req.NoError(err)
	req.Equal("hello bob", g.Greet())
}

func TestContainer_Resolve_Not_Registered(t *testing.T) {
	req := require.New(t)
	c := New(slog.Default())

	_, err := Resolve[greeter](c)

	req.ErrorIs(err, errors.ErrNotRegistered)
	req.False(Has[greeter](c))
	req.Panics(func() { MustResolve[greeter](c) })
}

func TestContainer_Register_Last_Write_Wins(t *testing.T) {
	req := require.New(t)
	c := New(slog.Default())

	Register[greeter](c, english{name: "alice"})
	Register[greeter](c, english{name: "clara"})

	g := MustResolve[greeter](c)
	req.Equal("hello clara", g.Greet())

	// A factory registered afterwards replaces the instance too
	RegisterFactory[greeter](c, func(Resolver) (greeter, error) {
		return english{name: "dan"}, nil
	})
	req.Equal("hello dan", MustResolve[greeter](c).Greet())
}

func TestContainer_Factory_Is_Memoized_Under_Concurrency(t *testing.T) {
	req := require.New(t)
	c := New(slog.Default())
	var builds atomic.Int32

	RegisterFactory[*clock](c, func(Resolver) (*clock, error) {
		builds.Add(1)
		return &clock{}, nil
	})

	// When many goroutines resolve for the first time at once
	var wg sync.WaitGroup
	results := make([]*clock, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = MustResolve[*clock](c)
		}(i)
	}
	wg.Wait()

	// Then the factory ran once and everybody shares the instance
	req.Equal(int32(1), builds.Load())
	for _, r := range results {
		req.Same(results[0], r)
	}
}

func TestContainer_Factory_Resolves_Dependencies(t *testing.T) {
	req := require.New(t)
	c := New(slog.Default())

	RegisterFactory[*clock](c, func(r Resolver) (*clock, error) {
		g, err := Resolve[greeter](r)
		if err != nil {
			return nil, err
		}
		return &clock{greeter: g}, nil
	})
	Register[greeter](c, english{name: "eve"})

	cl, err := Resolve[*clock](c)
	req.NoError(err)
	req.Equal("hello eve", cl.greeter.Greet())
}

func TestContainer_Factory_Error_Is_Not_Memoized(t *testing.T) {
	req := require.New(t)
	c := New(slog.Default())
	attempts := 0

	RegisterFactory[*clock](c, func(r Resolver) (*clock, error) {
		attempts++
		g, err := Resolve[greeter](r)
		if err != nil {
			return nil, err
		}
		return &clock{greeter: g}, nil
	})

	// Given a missing dependency, construction fails
	_, err := Resolve[*clock](c)
	req.ErrorIs(err, errors.ErrNotRegistered)

	// When the dependency shows up, the next resolution builds
	Register[greeter](c, english{name: "fay"})
	_, err = Resolve[*clock](c)
	req.NoError(err)
	req.Equal(2, attempts)
}

func TestContainer_Cycle_Fails_At_Construction(t *testing.T) {
	req := require.New(t)
	c := New(slog.Default())

	RegisterFactory[*clock](c, func(r Resolver) (*clock, error) {
		g, err := Resolve[greeter](r)
		return &clock{greeter: g}, err
	})
	RegisterFactory[greeter](c, func(r Resolver) (greeter, error) {
		if _, err := Resolve[*clock](r); err != nil {
			return nil, err
		}
		return english{}, nil
	})

	_, err := Resolve[*clock](c)
	req.ErrorIs(err, errors.ErrDependencyCycle)
	req.Contains(err.Error(), "*container.clock -> container.greeter -> *container.clock")

	// And Validate reports it at startup
	req.ErrorIs(c.Validate(), errors.ErrDependencyCycle)
}

func TestContainer_Cycle_Fails_When_Resolved_Concurrently(t *testing.T) {
	req := require.New(t)
	c := New(slog.Default())

	// Given two factories depending on each other, slow enough to overlap
	RegisterFactory[*clock](c, func(r Resolver) (*clock, error) {
		time.Sleep(50 * time.Millisecond)
		g, err := Resolve[greeter](r)
		return &clock{greeter: g}, err
	})
	RegisterFactory[greeter](c, func(r Resolver) (greeter, error) {
		time.Sleep(50 * time.Millisecond)
		if _, err := Resolve[*clock](r); err != nil {
			return nil, err
		}
		return english{}, nil
	})

	// When both ends of the cycle are resolved at the same time
	errs := make(chan error, 2)
	go func() {
		_, err := Resolve[*clock](c)
		errs <- err
	}()
	go func() {
		_, err := Resolve[greeter](c)
		errs <- err
	}()

	// Then both fail with a cycle instead of waiting on each other
	for range 2 {
		select {
		case err := <-errs:
			req.ErrorIs(err, errors.ErrDependencyCycle)
		case <-time.After(3 * time.Second):
			req.FailNow("concurrent resolution of a cycle never returned")
		}
	}
}

func TestContainer_Validate_Succeeds_For_A_Dag(t *testing.T) {
	req := require.New(t)
	c := New(slog.Default())

	RegisterFactory[*clock](c, func(r Resolver) (*clock, error) {
		g, err := Resolve[greeter](r)
		return &clock{greeter: g}, err
	})
	Register[greeter](c, english{name: "gus"})

	req.NoError(c.Validate())
}
