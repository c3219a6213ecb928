package sieve_test

import (
	"context"
	"testing"
	"time"

	sieve "github.com/sievelabs/sieve"
	g "github.com/sievelabs/sieve/dsl"
)

type signupInput struct {
	Email    string    `json:"email"`
	Nickname string    `sieve:"name=nick"`
	Age      int64     `json:"age"`
	Joined   time.Time `json:"joined"`
	Skipped  string    `json:"-"`
}

func TestCleanInto_TagResolution(t *testing.T) {
	s := g.Object().
		Field("email", g.Email()).
		Field("nick", g.TrimmedString().Optional()).
		Field("age", g.Int().Min(0)).
		Field("joined", g.DateTime()).
		MustBuild()

	got, err := sieve.CleanInto[signupInput](context.Background(), s, map[string]any{
		"email":  "user@example.com",
		"nick":   " kit ",
		"age":    "30",
		"joined": "2024-06-01T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Email != "user@example.com" || got.Nickname != "kit" || got.Age != 30 {
		t.Fatalf("unexpected binding: %+v", got)
	}
	if got.Joined.IsZero() {
		t.Fatalf("expected joined to bind, got zero time")
	}
}

func TestCleanInto_OmittedLeavesZeroValue(t *testing.T) {
	s := g.Object().
		Field("email", g.Email()).
		Field("nick", g.String().Optional()).
		Field("age", g.Int()).
		Field("joined", g.DateTime().Optional()).
		MustBuild()

	got, err := sieve.CleanInto[signupInput](context.Background(), s, map[string]any{
		"email": "user@example.com",
		"age":   1,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Nickname != "" || !got.Joined.IsZero() {
		t.Fatalf("expected zero values for omitted fields, got %+v", got)
	}
}

func TestCleanInto_ValidationErrorsPassThrough(t *testing.T) {
	s := g.Object().Field("email", g.Email()).MustBuild()
	_, err := sieve.CleanInto[signupInput](context.Background(), s, map[string]any{"email": "nope"})
	iss, ok := sieve.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Field != "email" {
		t.Fatalf("expected email issue, got %v", err)
	}
}

func TestCleanInto_PointerStruct(t *testing.T) {
	s := g.Object().
		Field("email", g.Email()).
		Field("age", g.Int()).
		MustBuild()

	got, err := sieve.CleanInto[*signupInput](context.Background(), s, map[string]any{
		"email": "user@example.com",
		"age":   30,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got == nil {
		t.Fatalf("expected a non-nil struct pointer")
	}
	if got.Email != "user@example.com" || got.Age != 30 {
		t.Fatalf("unexpected binding: %+v", *got)
	}
}

func TestCleanInto_RequiresStruct(t *testing.T) {
	s := g.Object().Field("email", g.Email()).MustBuild()
	_, err := sieve.CleanInto[int](context.Background(), s, map[string]any{"email": "user@example.com"})
	if _, ok := sieve.AsConfigError(err); !ok {
		t.Fatalf("expected ConfigError for non-struct T, got %v", err)
	}
}

func TestClean_NilSchema(t *testing.T) {
	if _, err := sieve.Clean(context.Background(), nil, map[string]any{}); err == nil {
		t.Fatalf("expected error for nil schema")
	}
	if _, err := sieve.CleanFrom(context.Background(), nil, sieve.JSONBytes([]byte(`{}`))); err == nil {
		t.Fatalf("expected error for nil schema")
	}
}
