package fileio

import (
	"path/filepath"
	"testing"

	"github.com/akashmaji946/gomixvm/value"
	"github.com/stretchr/testify/require"
)

func TestFopenFwriteFreadFclose(t *testing.T) {
	s := NewStore()
	path := filepath.Join(t.TempDir(), "greeting.txt")

	h, err := s.fopen([]value.Value{value.String(path), value.String("w")})
	require.NoError(t, err)

	n, err := s.fwrite([]value.Value{h, value.String("hello")})
	require.NoError(t, err)
	require.Equal(t, int64(5), n.AsInt())
	require.NoError(t, ignore(s.fclose([]value.Value{h})))

	h2, err := s.fopen([]value.Value{value.String(path), value.String("r")})
	require.NoError(t, err)
	data, err := s.fread([]value.Value{h2, value.Int(5)})
	require.NoError(t, err)
	require.Equal(t, "hello", data.AsString())
	require.NoError(t, ignore(s.fclose([]value.Value{h2})))
}

func TestFseekFtell(t *testing.T) {
	s := NewStore()
	path := filepath.Join(t.TempDir(), "seek.txt")
	h, err := s.fopen([]value.Value{value.String(path), value.String("w+")})
	require.NoError(t, err)
	_, err = s.fwrite([]value.Value{h, value.String("0123456789")})
	require.NoError(t, err)

	pos, err := s.fseek([]value.Value{h, value.Int(3), value.Int(0)})
	require.NoError(t, err)
	require.Equal(t, int64(3), pos.AsInt())

	cur, err := s.ftell([]value.Value{h})
	require.NoError(t, err)
	require.Equal(t, int64(3), cur.AsInt())
}

func TestFcloseUnknownHandleErrors(t *testing.T) {
	s := NewStore()
	_, err := s.fclose([]value.Value{value.Int(999)})
	require.Error(t, err)
}

func ignore(v value.Value, err error) error { return err }
