package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/funvibe/pyrrust/internal/diagnostics"
	"github.com/funvibe/pyrrust/internal/token"
)

func tok(line, col int) token.Token {
	return token.Token{Line: line, Column: col}
}

func TestNewErrorInfersSeverityFromCodePrefix(t *testing.T) {
	w := diagnostics.NewError(diagnostics.WarnAnnMissing, tok(1, 1), "missing annotation for %q", "x")
	assert.Equal(t, diagnostics.SeverityWarning, w.Severity)
	assert.Contains(t, w.Error(), `missing annotation for "x"`)
	assert.Contains(t, w.Error(), diagnostics.WarnAnnMissing)

	e := diagnostics.NewError(diagnostics.ErrTypMerge, tok(1, 1), "boom")
	assert.Equal(t, diagnostics.SeverityError, e.Severity)

	a := diagnostics.NewError(diagnostics.AssertInternal, tok(1, 1), "boom")
	assert.Equal(t, diagnostics.SeverityFatal, a.Severity)
}

func TestNewWarningForcesWarningSeverity(t *testing.T) {
	w := diagnostics.NewWarning(diagnostics.ErrTypMerge, tok(1, 1), "downgraded")
	assert.Equal(t, diagnostics.SeverityWarning, w.Severity)
}

func TestCollectorDeduplicatesByLineColumnCode(t *testing.T) {
	c := diagnostics.NewCollector()
	c.Add(diagnostics.NewError(diagnostics.WarnAnnMissing, tok(5, 3), "first"))
	c.Add(diagnostics.NewError(diagnostics.WarnAnnMissing, tok(5, 3), "duplicate, should be dropped"))
	c.Add(diagnostics.NewError(diagnostics.WarnAnnMissing, tok(6, 3), "different line"))

	all := c.All()
	assert.Len(t, all, 2)
	assert.Equal(t, "first", all[0].Message)
}

func TestCollectorHasFatalAndHasErrors(t *testing.T) {
	c := diagnostics.NewCollector()
	c.Add(diagnostics.NewError(diagnostics.WarnAnnMissing, tok(1, 1), "warn"))
	assert.False(t, c.HasFatal())
	assert.False(t, c.HasErrors())

	c.Add(diagnostics.NewError(diagnostics.ErrTypMerge, tok(2, 1), "err"))
	assert.False(t, c.HasFatal())
	assert.True(t, c.HasErrors())

	c.Add(diagnostics.NewError(diagnostics.AssertInternal, tok(3, 1), "fatal"))
	assert.True(t, c.HasFatal())
}

func TestCollectorAddNilIsNoop(t *testing.T) {
	c := diagnostics.NewCollector()
	c.Add(nil)
	assert.Empty(t, c.All())
}
