package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskFields_Empty(t *testing.T) {
	var f TaskFields
	assert.True(t, f.Empty())
	assert.Empty(t, f.Present())

	_, ok := f.Title()
	assert.False(t, ok)
	_, ok = f.Description()
	assert.False(t, ok)
}

func TestTaskFields_ClearIsDistinctFromOmitted(t *testing.T) {
	var f TaskFields
	f.SetDescription(nil)

	desc, ok := f.Description()
	assert.True(t, ok)
	assert.Nil(t, desc)

	_, ok = f.DueDate()
	assert.False(t, ok)
	assert.Equal(t, []Field{FieldDescription}, f.Present())
}

func TestTaskInput_FieldsCoversEveryColumn(t *testing.T) {
	in := TaskInput{Title: "write report", Status: StatusDone}

	f := in.Fields()
	assert.Equal(t, AllFields, f.Present())

	status, ok := f.Status()
	assert.True(t, ok)
	assert.Equal(t, StatusDone, status)
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}
