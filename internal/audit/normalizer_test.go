package audit

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"brandgenius/internal/domain"
)

func TestNormalizeStripsFences(t *testing.T) {
	raw := "```json\n{\"overall_score\":80,\"tone_score\":75,\"rubric_breakdown\":[\"tone ok\"],\"improvement_suggestions\":\"shorter sentences\"}\n```"
	got := Normalize(raw)
	if got[0] != '{' || got[len(got)-1] != '}' {
		t.Fatalf("Normalize left wrapping artifacts: %q", got)
	}

	report, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if report.OverallScore != 80 {
		t.Fatalf("OverallScore = %d, want 80", report.OverallScore)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	cases := []string{
		"```json\n{\"overall_score\":50}\n```",
		"{\"overall_score\":50}",
		"Here is the report:\n{\"overall_score\":50}\nHope that helps!",
		"",
		"no json at all",
	}
	for _, raw := range cases {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: %q vs %q", raw, once, twice)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	want := &domain.AuditReport{
		OverallScore:           92,
		ToneScore:              88,
		RubricBreakdown:        []string{"voice: on-brand", "claims: verified"},
		ImprovementSuggestions: "Tighten the call to action.",
	}
	serialized, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	got, err := Parse("```json\n" + string(serialized) + "\n```")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round-trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestParseRejectsUnparseableOutput(t *testing.T) {
	for _, raw := range []string{"", "the content looks fine to me", "```json\nnot json\n```"} {
		_, err := Parse(raw)
		if !errors.Is(err, domain.ErrProviderContract) {
			t.Fatalf("Parse(%q) err = %v, want ErrProviderContract", raw, err)
		}
	}
}

func TestParseRejectsOutOfRangeScores(t *testing.T) {
	_, err := Parse(`{"overall_score":140,"tone_score":50,"rubric_breakdown":[],"improvement_suggestions":""}`)
	if !errors.Is(err, domain.ErrProviderContract) {
		t.Fatalf("err = %v, want ErrProviderContract", err)
	}
}
