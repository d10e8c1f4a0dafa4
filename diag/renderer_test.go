package diag

import (
	"testing"

	"github.com/jbearak/rlsp/location"
	"github.com/stretchr/testify/assert"
)

type fakeSourceProvider struct {
	content []byte
}

func (p fakeSourceProvider) Content(span location.Span) ([]byte, bool) {
	return p.content, true
}

func TestFormatIssuePlainText(t *testing.T) {
	id := location.MustFileIDFromPath("/ws/main.R")
	issue := NewIssue(Error, E_UNDEFINED_VARIABLE, `"x" is not defined`).
		WithSpan(location.Point(id, 2, 4)).
		WithHint("check for a missing source() call").
		Build()

	r := NewRenderer()
	out := r.FormatIssue(issue)
	assert.Contains(t, out, "/ws/main.R:3:5") // 0-based Position -> 1-based display
	assert.Contains(t, out, "E_UNDEFINED_VARIABLE")
	assert.Contains(t, out, `"x" is not defined`)
	assert.Contains(t, out, "hint: check for a missing source() call")
}

func TestFormatResultMultipleIssuesSeparatedByNewline(t *testing.T) {
	c := NewCollector(NoLimit)
	c.Collect(NewIssue(Error, E_UNDEFINED_VARIABLE, "a").WithSpan(testSpan()).Build())
	c.Collect(NewIssue(Error, E_UNDEFINED_VARIABLE, "b").WithSpan(testSpan()).Build())

	r := NewRenderer()
	out := r.FormatResult(c.Result())
	assert.Contains(t, out, "\n")
}

func TestFormatIssueWithExcerpt(t *testing.T) {
	id := location.MustFileIDFromPath("/ws/main.R")
	issue := NewIssue(Error, E_UNDEFINED_VARIABLE, `"x" is not defined`).
		WithSpan(location.Point(id, 0, 6)).
		Build()

	provider := fakeSourceProvider{content: []byte("result <- x + 1\n")}
	r := NewRenderer(WithSourceProvider(provider), WithExcerpts(true))
	out := r.FormatIssue(issue)
	assert.Contains(t, out, "result <- x + 1")
	assert.Contains(t, out, "^")
}

func TestFormatSpanLocationRelativizesToModuleRoot(t *testing.T) {
	id := location.MustFileIDFromPath("/ws/pkg/main.R")
	r := NewRenderer(WithModuleRoot("/ws"))
	out := r.formatSpanLocation(location.Point(id, 0, 0))
	assert.Equal(t, "pkg/main.R:1:1", out)
}
