package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultOKIsEmpty(t *testing.T) {
	r := OK()
	assert.True(t, r.OK())
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.LimitReached())
}

func TestResultSeverityCounts(t *testing.T) {
	c := NewCollector(NoLimit)
	c.Collect(NewIssue(Error, E_UNDEFINED_VARIABLE, "a").WithSpan(testSpan()).Build())
	c.Collect(NewIssue(Warning, E_OUT_OF_SCOPE, "b").WithSpan(testSpan()).Build())
	c.Collect(NewIssue(Hint, E_INTERNAL, "c").WithSpan(testSpan()).Build())

	result := c.Result()
	counts := result.SeverityCounts()
	assert.Equal(t, 1, counts.Errors)
	assert.Equal(t, 1, counts.Warnings)
	assert.Equal(t, 1, counts.Hints)
	assert.True(t, result.HasErrors())
	assert.True(t, result.HasWarnings())
	assert.True(t, result.HasHints())
	assert.False(t, result.OK())
}

func TestResultErrorsSliceOnlyFailures(t *testing.T) {
	c := NewCollector(NoLimit)
	c.Collect(NewIssue(Error, E_UNDEFINED_VARIABLE, "a").WithSpan(testSpan()).Build())
	c.Collect(NewIssue(Warning, E_OUT_OF_SCOPE, "b").WithSpan(testSpan()).Build())

	errs := c.Result().ErrorsSlice()
	assert.Len(t, errs, 1)
	assert.Equal(t, "a", errs[0].Message())
}

func TestResultMessagesAtOrAbove(t *testing.T) {
	c := NewCollector(NoLimit)
	c.Collect(NewIssue(Error, E_UNDEFINED_VARIABLE, "err").WithSpan(testSpan()).Build())
	c.Collect(NewIssue(Warning, E_OUT_OF_SCOPE, "warn").WithSpan(testSpan()).Build())
	c.Collect(NewIssue(Hint, E_INTERNAL, "hint").WithSpan(testSpan()).Build())

	msgs := c.Result().MessagesAtOrAbove(Warning)
	assert.ElementsMatch(t, []string{"err", "warn"}, msgs)
}

func TestResultStringOKAndFailure(t *testing.T) {
	assert.Equal(t, "OK", OK().String())

	c := NewCollector(NoLimit)
	c.Collect(NewIssue(Error, E_UNDEFINED_VARIABLE, "boom").WithSpan(testSpan()).Build())
	s := c.Result().String()
	assert.Contains(t, s, "1 error(s)")
	assert.Contains(t, s, "boom")
}
