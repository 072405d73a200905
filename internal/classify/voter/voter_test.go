package voter

import (
	"testing"

	"github.com/msto63/cicero/internal/classify/features"
	"github.com/msto63/cicero/internal/doctype"
)

func TestAllZeroScoresReturnBaseline(t *testing.T) {
	// Features engineered to trigger no rule: moderate length, complete,
	// mid formality, no greeting/signature/technical terms
	f := features.New(2, 30, 15, true, 0.45, 0, 0.05, false, false)

	got := Decide("a perfectly unremarkable pair of sentences about nothing. indeed.", f, doctype.Message)
	if got != doctype.Message {
		t.Errorf("all-zero vote should return baseline, got %s", got)
	}

	got = Decide("a perfectly unremarkable pair of sentences about nothing. indeed.", f, doctype.Document)
	if got != doctype.Document {
		t.Errorf("baseline should pass through unchanged, got %s", got)
	}
}

func TestTieReturnsBaseline(t *testing.T) {
	// Greeting (+1 email) and one technical term (+1 code) tie at the top
	f := features.New(2, 30, 15, true, 0.45, 1, 0.05, true, false)

	got := Decide("hey, the query is below. thanks.", f, doctype.Social)
	if got != doctype.Social {
		t.Errorf("tied top scores should return baseline, got %s", got)
	}
}

func TestStrictWinnerOverridesBaseline(t *testing.T) {
	// Greeting + formality > 0.6 (+3) + signature (+3) + greeting (+1)
	f := features.New(3, 40, 13.3, true, 0.7, 0, 0.04, true, true)

	got := Decide("dear team, please find the update below. best regards, mike.", f, doctype.Message)
	if got != doctype.Email {
		t.Errorf("dominant email signals should override baseline, got %s", got)
	}
}

func TestTechnicalTermsVoteCode(t *testing.T) {
	f := features.New(1, 12, 12, true, 0.3, 6, 0.1, false, false)

	got := Decide("the function returns null when the array is empty.", f, doctype.Message)
	if got != doctype.Code {
		t.Errorf("technical text should vote code, got %s", got)
	}
}

func TestShortIncompleteVotesSearch(t *testing.T) {
	f := features.New(1, 3, 3, false, 0.0, 0, 0.0, false, false)

	got := Decide("best pizza berlin", f, doctype.Document)
	if got != doctype.Search {
		t.Errorf("short incomplete text should vote search, got %s", got)
	}
}

func TestOffByOneBoundary(t *testing.T) {
	// Exactly one point above the runner-up must win; equal must not.
	// Search gets +3 (short incomplete) +2 (very short) +1 (low punct) = 6.
	// Code gets exactly 6 via technical terms: tie, baseline wins.
	tied := features.New(1, 3, 3, false, 0.0, 6, 0.0, false, false)
	if got := Decide("grep util flags", tied, doctype.Email); got != doctype.Email {
		t.Errorf("exact tie must fall back to baseline, got %s", got)
	}

	// One more technical term breaks the tie toward code
	won := features.New(1, 3, 3, false, 0.0, 7, 0.0, false, false)
	if got := Decide("grep util flags", won, doctype.Email); got != doctype.Code {
		t.Errorf("strict winner must override baseline, got %s", got)
	}
}
