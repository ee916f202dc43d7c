package app

import (
	"context"
	"fmt"
	"testing"

	"reglookup/domain/lookup"
	"reglookup/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTableSource is a testify mock of ports.TableSource
type MockTableSource struct {
	mock.Mock
}

func (m *MockTableSource) Fetch(ctx context.Context) (lookup.Table, error) {
	args := m.Called(ctx)
	table, _ := args.Get(0).(lookup.Table)
	return table, args.Error(1)
}

func (m *MockTableSource) Describe() string {
	return "mock:employees"
}

var employees = lookup.Table{
	{"RegNo", "Name", "Department"},
	{"101", "Jane Doe", "Engineering"},
	{"102", "Sam Lee", "Sales"},
}

func TestLookupService_Found(t *testing.T) {
	source := new(MockTableSource)
	source.On("Fetch", mock.Anything).Return(employees, nil)

	result, err := NewLookupService(source).Lookup(context.Background(), "102")
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, "Sam Lee", result.Record.Value("Name"))
	source.AssertExpectations(t)
}

func TestLookupService_NotFoundIsNotAnError(t *testing.T) {
	source := new(MockTableSource)
	source.On("Fetch", mock.Anything).Return(employees, nil)

	svc := NewLookupService(source)
	for _, key := range []string{"999", "", " 101"} {
		result, err := svc.Lookup(context.Background(), key)
		require.NoError(t, err)
		assert.False(t, result.Found, "key %q", key)
	}
}

func TestLookupService_FetchesEveryCall(t *testing.T) {
	source := new(MockTableSource)
	source.On("Fetch", mock.Anything).Return(employees, nil).Twice()

	svc := NewLookupService(source)
	_, err := svc.Lookup(context.Background(), "101")
	require.NoError(t, err)
	_, err = svc.Lookup(context.Background(), "101")
	require.NoError(t, err)

	source.AssertNumberOfCalls(t, "Fetch", 2)
}

func TestLookupService_SourceUnavailable(t *testing.T) {
	cause := fmt.Errorf("quota exceeded")
	source := new(MockTableSource)
	source.On("Fetch", mock.Anything).Return(nil, cause)

	result, err := NewLookupService(source).Lookup(context.Background(), "101")
	require.Error(t, err)
	assert.False(t, result.Found)
	assert.Equal(t, errors.CodeSourceUnavailable, errors.GetCode(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "mock:employees")
}

func TestLookupService_EmptyTable(t *testing.T) {
	source := new(MockTableSource)
	source.On("Fetch", mock.Anything).Return(lookup.Table{}, nil)

	result, err := NewLookupService(source).Lookup(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestLookupService_Inspect(t *testing.T) {
	source := new(MockTableSource)
	source.On("Fetch", mock.Anything).Return(employees, nil)

	header, rows, err := NewLookupService(source).Inspect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, lookup.Header{"RegNo", "Name", "Department"}, header)
	assert.Equal(t, 2, rows)
}
