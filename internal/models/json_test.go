package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_ValueScan(t *testing.T) {
	in := JSON{"chain_id": float64(1), "gas_limit": float64(200000)}
	v, err := in.Value()
	require.NoError(t, err)

	var out JSON
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	require.NoError(t, out.Scan(`{"a":"b"}`))
	assert.Equal(t, JSON{"a": "b"}, out)

	require.NoError(t, out.Scan(nil))
	assert.Nil(t, out)

	assert.Error(t, out.Scan(42))
}

func TestJSON_NilValue(t *testing.T) {
	var j JSON
	v, err := j.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestOperatorClaims_HasPermission(t *testing.T) {
	c := &OperatorClaims{Permissions: []string{PermissionTimelockExtend}}
	assert.True(t, c.HasPermission(PermissionTimelockExtend))
	assert.False(t, c.HasPermission(PermissionAuditRead))
}
