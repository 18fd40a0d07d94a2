package fakesql

import (
	"testing"

	"github.com/akashmaji946/gomixvm/value"
	"github.com/stretchr/testify/require"
)

func mapValue(pairs map[string]value.Value) value.Value {
	m := &value.Map{}
	for k, v := range pairs {
		m.Keys = append(m.Keys, value.String(k))
		m.Values = append(m.Values, v)
	}
	return value.MapOf(m)
}

func TestInsertThenSelectFindsMatchingRow(t *testing.T) {
	s := NewStore()
	row := mapValue(map[string]value.Value{"name": value.String("ada"), "age": value.Int(30)})
	_, err := s.insert([]value.Value{value.String("users"), row})
	require.NoError(t, err)

	result, err := s.selectWhere([]value.Value{value.String("users"), value.String("name"), value.String("ada")})
	require.NoError(t, err)
	require.Equal(t, 1, len(result.AsArray().Elements))
}

func TestSelectNoMatchReturnsEmptyArray(t *testing.T) {
	s := NewStore()
	result, err := s.selectWhere([]value.Value{value.String("users"), value.String("name"), value.String("nobody")})
	require.NoError(t, err)
	require.Equal(t, 0, len(result.AsArray().Elements))
}

func TestSelectOnlyMatchesRequestedTable(t *testing.T) {
	s := NewStore()
	row := mapValue(map[string]value.Value{"name": value.String("ada")})
	_, err := s.insert([]value.Value{value.String("users"), row})
	require.NoError(t, err)

	result, err := s.selectWhere([]value.Value{value.String("other_table"), value.String("name"), value.String("ada")})
	require.NoError(t, err)
	require.Equal(t, 0, len(result.AsArray().Elements))
}
