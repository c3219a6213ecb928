package rules_test

import (
	"context"
	"testing"

	sieve "github.com/sievelabs/sieve"
	g "github.com/sievelabs/sieve/dsl"
	"github.com/sievelabs/sieve/rules"
)

func ruleIssue(t *testing.T, s sieve.Schema, data map[string]any, want string) sieve.Issues {
	t.Helper()
	_, err := s.Clean(context.Background(), data)
	if want == "" {
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		return nil
	}
	iss, ok := sieve.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Field != want {
		t.Fatalf("expected single issue at %q, got %v", want, err)
	}
	return iss
}

func TestRequiredTogether(t *testing.T) {
	s := g.Object().
		Field("card", g.String().Optional()).
		Field("cvc", g.String().Optional()).
		Field("payment", rules.RequiredTogether("card", "cvc")).
		MustBuild()

	ruleIssue(t, s, map[string]any{"card": "4111", "cvc": "123"}, "")
	ruleIssue(t, s, map[string]any{}, "")
	iss := ruleIssue(t, s, map[string]any{"card": "4111"}, "payment")
	if iss[0].Code != sieve.CodeCustom {
		t.Fatalf("expected custom code, got %v", iss[0])
	}

	out, err := s.Clean(context.Background(), map[string]any{"card": "4111", "cvc": "123"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := out["payment"]; ok {
		t.Fatalf("rule field must not appear in result, got %v", out)
	}
}

func TestMutuallyExclusive(t *testing.T) {
	s := g.Object().
		Field("email", g.Email().Optional()).
		Field("phone", g.String().Optional()).
		Field("contact", rules.MutuallyExclusive("email", "phone")).
		MustBuild()

	ruleIssue(t, s, map[string]any{"email": "a@example.com"}, "")
	ruleIssue(t, s, map[string]any{}, "")
	ruleIssue(t, s, map[string]any{"email": "a@example.com", "phone": "555"}, "contact")
}

func TestAtLeastOne(t *testing.T) {
	s := g.Object().
		Field("email", g.Email().Optional()).
		Field("phone", g.String().Optional()).
		Field("contact", rules.AtLeastOne("email", "phone")).
		MustBuild()

	ruleIssue(t, s, map[string]any{"phone": "555"}, "")
	ruleIssue(t, s, map[string]any{}, "contact")
}

func TestExactlyOne(t *testing.T) {
	s := g.Object().
		Field("a", g.String().Optional()).
		Field("b", g.String().Optional()).
		Field("pick", rules.ExactlyOne("a", "b")).
		MustBuild()

	ruleIssue(t, s, map[string]any{"a": "x"}, "")
	ruleIssue(t, s, map[string]any{}, "pick")
	ruleIssue(t, s, map[string]any{"a": "x", "b": "y"}, "pick")
}

func TestRule_SkippedWhenFieldErrors(t *testing.T) {
	s := g.Object().
		Field("email", g.Email().Optional()).
		Field("phone", g.String().Optional()).
		Field("contact", rules.AtLeastOne("email", "phone")).
		MustBuild()

	// the field's own issue is reported, the rule stays silent
	_, err := s.Clean(context.Background(), map[string]any{"email": "not-an-email"})
	iss, ok := sieve.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Field != "email" {
		t.Fatalf("expected only the email issue, got %v", err)
	}
}

func TestRule_NullCountsAsProvided(t *testing.T) {
	s := g.Object().
		Field("a", g.String().Optional().Nullable()).
		Field("b", g.String().Optional()).
		Field("pick", rules.ExactlyOne("a", "b")).
		MustBuild()

	ruleIssue(t, s, map[string]any{"a": nil}, "")
}
