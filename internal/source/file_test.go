package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/schema"
)

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"a"},{"id":"b","certificateUrl":"x"}]`), 0o644))

	src := NewFileSource(path)
	records, err := src.FetchRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[1].HasCertificate())
	assert.Equal(t, path, src.Describe())
}

func TestFileSourceStdin(t *testing.T) {
	src := NewFileSource(StdinPath)
	src.stdin = strings.NewReader(`{"data":[{"id":"x"}]}`)

	records, err := src.FetchRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "stdin", src.Describe())
}

func TestFileSourceErrors(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json")).FetchRecords(context.Background())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ok":true}`), 0o644))
	_, err = NewFileSource(path).FetchRecords(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedPayload)
}

func TestNew(t *testing.T) {
	src, err := New(&contract.Config{Source: schema.FileSource, InputFile: "x.json"})
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, src)

	src, err = New(&contract.Config{Source: schema.HTTPSource, APIURL: "http://localhost", APIPath: "/api/leads"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPSource{}, src)

	_, err = New(&contract.Config{Source: "ftp"})
	assert.Error(t, err)
}
