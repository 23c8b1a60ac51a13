package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoPatchDistinguishesAbsentFromNull(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, p TodoPatch)
	}{
		{
			name: "empty body leaves everything unset",
			body: `{}`,
			check: func(t *testing.T, p TodoPatch) {
				assert.False(t, p.Title.Set)
				assert.False(t, p.DueDate.Set)
				assert.False(t, p.Completed.Set)
			},
		},
		{
			name: "null due date is set and null",
			body: `{"dueDate": null}`,
			check: func(t *testing.T, p TodoPatch) {
				assert.True(t, p.DueDate.Set)
				assert.True(t, p.DueDate.Null)
				assert.False(t, p.Title.Set)
			},
		},
		{
			name: "values are decoded",
			body: `{"title": "Read", "completed": false, "timeSpent": 25}`,
			check: func(t *testing.T, p TodoPatch) {
				assert.Equal(t, Some("Read"), p.Title)
				assert.Equal(t, Some(false), p.Completed)
				assert.Equal(t, Some(25), p.TimeSpent)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p TodoPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			tt.check(t, p)
		})
	}
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var p TodoPatch
	err := json.Unmarshal([]byte(`{"timeSpent": "ten"}`), &p)
	assert.Error(t, err)
}

func TestValidationErrorUnwraps(t *testing.T) {
	verr := (&ValidationError{}).Add("title", "Title is required", "")
	err := verr.OrNil()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.True(t, verr.Has("title"))
	assert.False(t, verr.Has("category"))
	assert.Contains(t, err.Error(), "title: Title is required")

	assert.NoError(t, (&ValidationError{}).OrNil())
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, CategoryHealth.Valid())
	assert.False(t, Category("invalid-value").Valid())
	assert.True(t, PriorityHigh.Valid())
	assert.False(t, Priority("HIGH").Valid())
}
