package container

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrNotInstantiable    = errors.New("container: target is not instantiable")
	ErrAliasCycle         = errors.New("container: alias cycle")
	ErrInvalidCallable    = errors.New("container: callable type not allowed")
	ErrCircularDependency = errors.New("container: circular dependency")
)

// InstantiationError is returned when an abstract resolves to something that
// cannot be constructed: an interface with no binding, an unknown type name,
// a non-struct type without a constructor. It is also returned by GetInstance
// when no default container has been set.
type InstantiationError struct {
	Abstract string
	Reason   string
}

func (e *InstantiationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("container: target [%s] is not instantiable", e.Abstract)
	}
	return fmt.Sprintf("container: target [%s] is not instantiable: %s", e.Abstract, e.Reason)
}

func (e *InstantiationError) Is(target error) bool { return target == ErrNotInstantiable }

// AliasCycleError is the logic error raised when an alias chain leads back to
// a name already visited.
type AliasCycleError struct {
	Alias string
	Path  []string
}

func (e *AliasCycleError) Error() string {
	if len(e.Path) <= 1 {
		return fmt.Sprintf("container: [%s] is aliased to itself", e.Alias)
	}
	return fmt.Sprintf("container: alias cycle: %s", strings.Join(e.Path, " -> "))
}

func (e *AliasCycleError) Is(target error) bool { return target == ErrAliasCycle }

// InvalidCallableError is returned by Call for a callable shape it does not
// recognise, or whose target method cannot be found.
type InvalidCallableError struct {
	Callable any
	Reason   string
}

func (e *InvalidCallableError) Error() string {
	return fmt.Sprintf("container: callable %#v not allowed: %s", e.Callable, e.Reason)
}

func (e *InvalidCallableError) Is(target error) bool { return target == ErrInvalidCallable }

// CircularDependencyError reports a type that, directly or indirectly,
// requires itself while being built.
type CircularDependencyError struct {
	Path []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("container: circular dependency: %s", strings.Join(e.Path, " -> "))
}

func (e *CircularDependencyError) Is(target error) bool { return target == ErrCircularDependency }

// ResolutionError adds context to a failure that happened while resolving a
// parameter or running a constructor.
type ResolutionError struct {
	Abstract string
	Param    string
	Cause    error
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString("container: resolving [")
	b.WriteString(e.Abstract)
	b.WriteString("]")
	if e.Param != "" {
		b.WriteString(" parameter ")
		b.WriteString(e.Param)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *ResolutionError) Unwrap() error { return e.Cause }
