package fillers

import (
	"strings"
	"testing"
)

func TestRemovesLeadingFiller(t *testing.T) {
	r := NewRemover()
	got, removed := r.Remove("um I would like coffee")

	if got != "I would like coffee" {
		t.Errorf("expected filler-free text, got %q", got)
	}
	if len(removed) != 1 || removed[0] != "um" {
		t.Errorf("expected [um], got %v", removed)
	}
}

func TestProtectedLikeSurvives(t *testing.T) {
	r := NewRemover()
	input := "I would like coffee"

	if got, _ := r.Remove(input); got != input {
		t.Errorf("protected 'like' must survive, got %q", got)
	}
}

func TestProtectedYouKnow(t *testing.T) {
	r := NewRemover()
	input := "Do you know the answer"

	if got, _ := r.Remove(input); got != input {
		t.Errorf("'do you know' must survive, got %q", got)
	}
}

func TestUnprotectedYouKnowRemoved(t *testing.T) {
	r := NewRemover()
	got, removed := r.Remove("It was you know fine")

	if got != "It was fine" {
		t.Errorf("expected %q, got %q", "It was fine", got)
	}
	if len(removed) != 1 || removed[0] != "you know" {
		t.Errorf("expected [you know], got %v", removed)
	}
}

func TestMultipleFillersRemovedInTableOrder(t *testing.T) {
	r := NewRemover()
	got, removed := r.Remove("Um it was uh basically done")

	if got != "it was done" {
		t.Errorf("expected %q, got %q", "it was done", got)
	}
	want := []string{"Um", "uh", "basically"}
	if len(removed) != len(want) {
		t.Fatalf("expected %v, got %v", want, removed)
	}
	for i := range want {
		if removed[i] != want[i] {
			t.Errorf("removed[%d]: expected %q, got %q", i, want[i], removed[i])
		}
	}
}

func TestFillerInsideWordUntouched(t *testing.T) {
	r := NewRemover()
	input := "The summer was perfect"

	// "um" inside "summer" and "er" inside "perfect" must not match
	if got, _ := r.Remove(input); got != input {
		t.Errorf("word-boundary matching failed, got %q", got)
	}
}

func TestLeadingCommaCleanedUp(t *testing.T) {
	r := NewRemover()
	got, _ := r.Remove("Um, so the plan stands")

	if strings.HasPrefix(got, ",") {
		t.Errorf("dangling comma after leading filler, got %q", got)
	}
	if !strings.Contains(got, "the plan stands") {
		t.Errorf("content lost, got %q", got)
	}
}

func TestProtectedKindOf(t *testing.T) {
	r := NewRemover()
	input := "What kind of coffee do you want"

	if got, _ := r.Remove(input); got != input {
		t.Errorf("'what kind of' must survive, got %q", got)
	}
}
