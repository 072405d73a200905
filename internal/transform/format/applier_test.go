package format

import (
	"strings"
	"testing"

	"github.com/msto63/cicero/internal/doctype"
)

func TestEmailGreetingWithRecipient(t *testing.T) {
	a := NewApplier()
	got, changes := a.Apply("thanks for the update i will review it tomorrow", doctype.Email, "Sam", nil)

	if !strings.HasPrefix(got, "Hi Sam,") {
		t.Errorf("expected greeting with recipient, got %q", got)
	}
	if !strings.Contains(got, "Thanks for the update") {
		t.Errorf("body should be capitalized, got %q", got)
	}
	if !containsChange(changes, "greeting_added") {
		t.Errorf("expected greeting_added in %v", changes)
	}
}

func TestEmailExistingGreetingKept(t *testing.T) {
	a := NewApplier()
	got, changes := a.Apply("hi sam thanks for everything", doctype.Email, "", nil)

	if !strings.Contains(got, "Sam") {
		t.Errorf("name after greeting should be capitalized, got %q", got)
	}
	if containsChange(changes, "greeting_added") {
		t.Errorf("greeting already present, changes %v", changes)
	}
}

func TestEmailClosingAppended(t *testing.T) {
	a := NewApplier()
	got, changes := a.Apply("i reviewed the numbers and they look consistent with last quarter", doctype.Email, "", nil)

	if !strings.HasSuffix(got, "Best regards") {
		t.Errorf("expected closing on long email, got %q", got)
	}
	if !containsChange(changes, "closing_added") {
		t.Errorf("expected closing_added in %v", changes)
	}
}

func TestEmailParagraphGrouping(t *testing.T) {
	a := NewApplier()
	text := "first point. second point. third point. fourth point. fifth point."
	got, _ := a.Apply(text, doctype.Email, "", nil)

	if strings.Count(got, "\n\n") < 1 {
		t.Errorf("five sentences should form more than one paragraph, got %q", got)
	}
}

func TestMessageQuestionCue(t *testing.T) {
	a := NewApplier()
	got, _ := a.Apply("can you check the logs", doctype.Message, "", nil)

	if got != "Can you check the logs?" {
		t.Errorf("question cue should yield ?, got %q", got)
	}
}

func TestMessageQuestionCueTableIsClosed(t *testing.T) {
	a := NewApplier()

	got, _ := a.Apply("would you mind checking", doctype.Message, "", nil)
	if got != "Would you mind checking." {
		t.Errorf("only can/could cues mark questions, got %q", got)
	}

	got, _ = a.Apply("where did the build logs go", doctype.Message, "", nil)
	if got != "Where did the build logs go?" {
		t.Errorf("question opener should yield ?, got %q", got)
	}
}

func TestMessageWithRecipient(t *testing.T) {
	a := NewApplier()
	got, _ := a.Apply("running late", doctype.Message, "Kim", nil)

	if got != "Hi Kim, running late." {
		t.Errorf("expected greeting and period, got %q", got)
	}
}

func TestDocumentBulletPoints(t *testing.T) {
	a := NewApplier()
	got, changes := a.Apply("first point. second point", doctype.Document, "", map[string]string{"format": "bullet_points"})

	if got != "• First point\n• Second point" {
		t.Errorf("unexpected bullet output %q", got)
	}
	if len(changes) != 1 || changes[0] != "bullet_points" {
		t.Errorf("sub-format must return early, changes %v", changes)
	}
}

func TestDocumentMemo(t *testing.T) {
	a := NewApplier()
	got, _ := a.Apply("budget review friday", doctype.Document, "", map[string]string{"format": "memo"})

	if got != "MEMO\n\nBudget review friday." {
		t.Errorf("unexpected memo output %q", got)
	}
}

func TestSocialTweetTruncation(t *testing.T) {
	a := NewApplier()
	got, changes := a.Apply("this is a very long tweet that goes on", doctype.Social, "", map[string]string{"format": "tweet", "limit": "20"})

	if len(got) > 20 {
		t.Errorf("tweet exceeds limit: %d chars, %q", len(got), got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis, got %q", got)
	}
	if !containsChange(changes, "truncated_tweet") {
		t.Errorf("expected truncated_tweet in %v", changes)
	}
}

func TestSocialAutoTruncationBetweenBounds(t *testing.T) {
	a := NewApplier()
	text := strings.TrimSpace(strings.Repeat("word ", 50))
	got, _ := a.Apply(text, doctype.Social, "", nil)

	if !strings.HasSuffix(got, "...") {
		t.Errorf("50-word social text should be truncated, got %q", got)
	}
	if n := len(strings.Fields(strings.TrimSuffix(got, "..."))); n != 40 {
		t.Errorf("expected 40 words, got %d", n)
	}
}

func TestSocialLongTextLeftUntouched(t *testing.T) {
	a := NewApplier()
	text := strings.TrimSpace(strings.Repeat("word ", 120))
	got, _ := a.Apply(text, doctype.Social, "", nil)

	if strings.Contains(got, "...") {
		t.Errorf("120-word text is assumed misclassified, must not truncate: %q", got)
	}
}

func TestSocialIdempotentOnShortText(t *testing.T) {
	a := NewApplier()
	once, _ := a.Apply("shipping the new release today", doctype.Social, "", map[string]string{})
	twice, _ := a.Apply(once, doctype.Social, "", map[string]string{})

	if once != twice {
		t.Errorf("social formatting must be idempotent on short text: %q vs %q", once, twice)
	}
}

func TestSearchStripsStopWordsAndLowercases(t *testing.T) {
	a := NewApplier()
	got, _ := a.Apply("Please find the best Coffee in town", doctype.Search, "", nil)

	if got != "find best coffee town" {
		t.Errorf("unexpected search query %q", got)
	}
}

func TestSearchTruncatesToTenWords(t *testing.T) {
	a := NewApplier()
	text := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu"
	got, changes := a.Apply(text, doctype.Search, "", nil)

	if n := len(strings.Fields(got)); n != 10 {
		t.Errorf("expected 10 words, got %d: %q", n, got)
	}
	if !containsChange(changes, "truncated") {
		t.Errorf("expected truncated in %v", changes)
	}
}

func TestSearchAllStopWordsKeptVerbatim(t *testing.T) {
	a := NewApplier()
	got, changes := a.Apply("The for to of", doctype.Search, "", nil)

	if got != "the for to of" {
		t.Errorf("all-stopword query must not be emptied, got %q", got)
	}
	if containsChange(changes, "stop_words_removed") {
		t.Errorf("nothing was removed, changes %v", changes)
	}
}

func TestBulletPointsTerminatorOnlyInput(t *testing.T) {
	a := NewApplier()
	got, _ := a.Apply("...", doctype.Document, "", map[string]string{"format": "bullet_points"})

	if got != "..." {
		t.Errorf("terminator-only input must pass through, got %q", got)
	}
}

func TestCodeMinimalFormatting(t *testing.T) {
	a := NewApplier()
	got, _ := a.Apply("the function returns nil", doctype.Code, "", nil)

	if got != "The function returns nil." {
		t.Errorf("unexpected code comment %q", got)
	}
}

func TestUnknownFallsBackToPlain(t *testing.T) {
	a := NewApplier()
	got, _ := a.Apply("just some words", doctype.Unknown, "", nil)

	if got != "Just some words." {
		t.Errorf("unexpected output %q", got)
	}
}

func containsChange(changes []string, want string) bool {
	for _, c := range changes {
		if c == want {
			return true
		}
	}
	return false
}
