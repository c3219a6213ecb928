package dsl

import (
	"reflect"
	"testing"

	sieve "github.com/sievelabs/sieve"
)

func TestResolveOrder_NoDepsKeepsDeclarationOrder(t *testing.T) {
	names := []string{"c", "a", "b"}
	order, cerr := resolveOrder(names, map[string][]string{})
	if cerr != nil {
		t.Fatalf("unexpected config error: %v", cerr)
	}
	if !reflect.DeepEqual(order, names) {
		t.Fatalf("expected declaration order %v, got %v", names, order)
	}
}

func TestResolveOrder_DependenciesFirst(t *testing.T) {
	names := []string{"total", "price", "qty"}
	deps := map[string][]string{"total": {"price", "qty"}}
	order, cerr := resolveOrder(names, deps)
	if cerr != nil {
		t.Fatalf("unexpected config error: %v", cerr)
	}
	want := []string{"price", "qty", "total"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
}

func TestResolveOrder_StableAcrossRuns(t *testing.T) {
	names := []string{"e", "d", "c", "b", "a"}
	deps := map[string][]string{"d": {"a"}, "c": {"a"}}
	first, cerr := resolveOrder(names, deps)
	if cerr != nil {
		t.Fatalf("unexpected config error: %v", cerr)
	}
	for i := 0; i < 50; i++ {
		got, cerr := resolveOrder(names, deps)
		if cerr != nil {
			t.Fatalf("unexpected config error: %v", cerr)
		}
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("order not stable: %v vs %v", got, first)
		}
	}
}

func TestResolveOrder_Cycle(t *testing.T) {
	names := []string{"a", "b"}
	deps := map[string][]string{"a": {"b"}, "b": {"a"}}
	_, cerr := resolveOrder(names, deps)
	if cerr == nil {
		t.Fatalf("expected config error for cycle")
	}
	var asErr error = cerr
	if _, ok := sieve.AsConfigError(asErr); !ok {
		t.Fatalf("expected *sieve.ConfigError, got %T", asErr)
	}
}

func TestResolveOrder_SelfDependency(t *testing.T) {
	_, cerr := resolveOrder([]string{"a"}, map[string][]string{"a": {"a"}})
	if cerr == nil {
		t.Fatalf("expected config error for self dependency")
	}
}

func TestResolveOrder_UndeclaredDependency(t *testing.T) {
	_, cerr := resolveOrder([]string{"a"}, map[string][]string{"a": {"ghost"}})
	if cerr == nil {
		t.Fatalf("expected config error for undeclared dependency")
	}
}
