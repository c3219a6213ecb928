package dsl

import (
	"sort"
	"strings"

	sieve "github.com/sievelabs/sieve"
)

// resolveOrder computes a linear evaluation order over the dependency graph:
// every field appears after all fields it depends on. Fields with no ordering
// constraint between them keep declaration order, so evaluation and error
// ordering are deterministic across runs. An undeclared dependency or a cycle
// is a schema defect and yields a *sieve.ConfigError.
func resolveOrder(names []string, deps map[string][]string) ([]string, *sieve.ConfigError) {
	declared := make(map[string]struct{}, len(names))
	for _, n := range names {
		declared[n] = struct{}{}
	}
	for _, n := range names {
		for _, d := range deps[n] {
			if _, ok := declared[d]; !ok {
				return nil, &sieve.ConfigError{Msg: "field " + n + " depends on undeclared field " + d}
			}
			if d == n {
				return nil, &sieve.ConfigError{Msg: "field " + n + " depends on itself"}
			}
		}
	}

	order := make([]string, 0, len(names))
	done := make(map[string]struct{}, len(names))
	remaining := len(names)
	for remaining > 0 {
		progressed := false
		for _, n := range names {
			if _, ok := done[n]; ok {
				continue
			}
			ready := true
			for _, d := range deps[n] {
				if _, ok := done[d]; !ok {
					ready = false
					break
				}
			}
			if !ready {
				continue
			}
			done[n] = struct{}{}
			order = append(order, n)
			remaining--
			progressed = true
		}
		if !progressed {
			var stuck []string
			for _, n := range names {
				if _, ok := done[n]; !ok {
					stuck = append(stuck, n)
				}
			}
			sort.Strings(stuck)
			return nil, &sieve.ConfigError{Msg: "dependency cycle among fields: " + strings.Join(stuck, ", ")}
		}
	}
	return order, nil
}
