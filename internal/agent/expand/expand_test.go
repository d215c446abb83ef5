package expand

import (
	"context"
	"errors"
	"testing"

	"inventory-app/internal/llm"

	"github.com/stretchr/testify/assert"
)

type stubClient struct {
	reply string
	err   error
}

func (s *stubClient) Complete(_ context.Context, _ string) (string, error) {
	return s.reply, s.err
}

func (s *stubClient) CompleteWithRequest(_ context.Context, _ *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Content: s.reply}, nil
}

func (s *stubClient) GetModelName() string { return "stub" }

func TestSanitizeLikeEscapesMetacharacters(t *testing.T) {
	assert.Equal(t, `100\%`, SanitizeLike("100%"))
	assert.Equal(t, `a\_b`, SanitizeLike("a_b"))
	assert.Equal(t, "plain", SanitizeLike("plain"))
	assert.Equal(t, "日出", SanitizeLike("日出"))
}

func TestSanitizeLikeIdempotent(t *testing.T) {
	for _, term := range []string{"100%", "a_b", `back\slash`, `mix%_\ed`, ""} {
		once := SanitizeLike(term)
		assert.Equal(t, once, SanitizeLike(once), "term %q", term)
	}
}

func TestExpandWithoutClient(t *testing.T) {
	got := Expand(context.Background(), nil, "  sunrise ")
	assert.Equal(t, []string{"sunrise"}, got)
}

func TestExpandClientFailureFallsBack(t *testing.T) {
	client := &stubClient{err: errors.New("model down")}
	got := Expand(context.Background(), client, "sunrise")
	assert.Equal(t, []string{"sunrise"}, got)
}

func TestExpandParsesVariants(t *testing.T) {
	client := &stubClient{reply: "Here you go:\n[\"日出\", \"sunrises\", \"sunrise\"]"}
	got := Expand(context.Background(), client, "sunrise")
	// Original first, duplicates dropped.
	assert.Equal(t, []string{"sunrise", "日出", "sunrises"}, got)
}

func TestExpandSanitizesVariants(t *testing.T) {
	client := &stubClient{reply: `["100% cotton", "wild_card"]`}
	got := Expand(context.Background(), client, "fabric")
	assert.Equal(t, []string{"fabric", `100\% cotton`, `wild\_card`}, got)
}

func TestExpandCapsVariantCount(t *testing.T) {
	client := &stubClient{reply: `["a","b","c","d","e","f","g","h"]`}
	got := Expand(context.Background(), client, "term")
	assert.Len(t, got, maxVariants)
	assert.Equal(t, "term", got[0])
}

func TestExpandGarbageReplyFallsBack(t *testing.T) {
	client := &stubClient{reply: "I could not think of any variants."}
	got := Expand(context.Background(), client, "sunrise")
	assert.Equal(t, []string{"sunrise"}, got)
}

func TestExpandEmptyTerm(t *testing.T) {
	client := &stubClient{reply: `["ignored"]`}
	got := Expand(context.Background(), client, "   ")
	assert.Equal(t, []string{""}, got)
}
