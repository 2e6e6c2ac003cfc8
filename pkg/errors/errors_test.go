package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"entity name", &EntityNameError{Kind: "company", Name: "---"}, ErrInvalidEntityName},
		{"content item", &ContentItemError{ItemID: "investment:x", Field: "title"}, ErrInvalidContentItem},
		{"source", &SourceError{ItemID: "investment:x"}, ErrInvalidSource},
		{"category", &CategoryError{Category: "podcast"}, ErrUnknownCategory},
		{"validation", &ValidationError{Field: "runId", Message: "cannot be empty"}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, stderrors.Is(tt.err, tt.sentinel))
			assert.False(t, stderrors.Is(tt.err, stderrors.New("other")))
		})
	}
}

func TestViolationString(t *testing.T) {
	v := Violation{Path: "content.investments[0]", Message: "missing 'title'"}
	assert.Equal(t, "content.investments[0]: missing 'title'", v.String())

	rootless := Violation{Message: "document is nil"}
	assert.Equal(t, "(root): document is nil", rootless.String())
}

func TestSchemaViolations(t *testing.T) {
	violations := SchemaViolations{
		{Path: "metadata", Message: "missing 'version'"},
		{Path: "content.events[0]", Message: "missing 'id'"},
	}

	require.Error(t, violations)
	assert.True(t, stderrors.Is(violations, ErrSchemaViolation))
	assert.Contains(t, violations.Error(), "metadata: missing 'version'")
	assert.Contains(t, violations.Error(), "content.events[0]: missing 'id'")
}

func TestHelperPredicates(t *testing.T) {
	assert.True(t, IsInvalidEntityName(&EntityNameError{Kind: "person", Name: ""}))
	assert.True(t, IsUnknownCategory(&CategoryError{Category: "x"}))
	assert.True(t, IsSchemaViolation(SchemaViolations{{Message: "m"}}))
	assert.False(t, IsInvalidSource(&CategoryError{Category: "x"}))
	assert.False(t, IsSchemaViolation(nil))
}
