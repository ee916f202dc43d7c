package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"reglookup/app"
	"reglookup/domain/lookup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	table lookup.Table
	err   error
}

func (s stubSource) Fetch(ctx context.Context) (lookup.Table, error) { return s.table, s.err }
func (s stubSource) Describe() string                                 { return "stub:employees" }

func stubFactory(src stubSource) serviceFactory {
	return func(ctx context.Context) (*app.LookupService, func(), error) {
		return app.NewLookupService(src), func() {}, nil
	}
}

var employees = lookup.Table{
	{"RegNo", "Name", "Department"},
	{"101", "Jane Doe", "Engineering"},
}

func execute(factory serviceFactory, args ...string) (string, error) {
	cmd := newRootCmd(factory)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFind_Found(t *testing.T) {
	out, err := execute(stubFactory(stubSource{table: employees}), "find", "101")
	require.NoError(t, err)
	assert.JSONEq(t, `{"found":true,"data":{"RegNo":"101","Name":"Jane Doe","Department":"Engineering"}}`, out)
}

func TestFind_NotFound(t *testing.T) {
	out, err := execute(stubFactory(stubSource{table: employees}), "find", "999")
	assert.True(t, errors.Is(err, errNotFound))
	assert.JSONEq(t, `{"found":false}`, out)
}

func TestFind_SourceError(t *testing.T) {
	out, err := execute(stubFactory(stubSource{err: fmt.Errorf("timeout")}), "find", "101")
	require.Error(t, err)
	assert.False(t, errors.Is(err, errNotFound))
	assert.Contains(t, out, `"error": "Internal Server Error"`)
}

func TestFind_RequiresOneArg(t *testing.T) {
	_, err := execute(stubFactory(stubSource{table: employees}), "find")
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	out, err := execute(stubFactory(stubSource{table: employees}), "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "Source:    stub:employees")
	assert.Contains(t, out, "Data rows: 1")
	assert.Contains(t, out, "Key column: RegNo")
	assert.Contains(t, out, "RegNo | Name | Department")
}

func TestInspect_EmptyTable(t *testing.T) {
	out, err := execute(stubFactory(stubSource{table: lookup.Table{}}), "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "Columns:   0")
	assert.NotContains(t, out, "Key column")
}
