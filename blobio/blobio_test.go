package blobio

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/pengfeili1/Molmodsummer"
)

func graphs(t *testing.T) []*chem.MolecularGraph {
	ret := make([]*chem.MolecularGraph, 0)
	for _, b := range []string{
		"6,6,1,1,1,1 0_1_2,0_2_1,0_3_1,1_4_1,1_5_1",
		"8,1,1 0_1_1,0_2_1",
		"18 ",
		"6,6,6,6,6,6 0_1_0,1_2_0,2_3_0,3_4_0,4_5_0,5_0_0",
	} {
		M, err := chem.FromBlob(b)
		require.NoError(t, err)
		ret = append(ret, M)
	}
	return ret
}

func TestCompressionFor(Te *testing.T) {
	assert.Equal(Te, Zstd, CompressionFor("a.blobs.zst"))
	assert.Equal(Te, Zstd, CompressionFor("a.ZSTD"))
	assert.Equal(Te, Gzip, CompressionFor("a.txt.gz"))
	assert.Equal(Te, Plain, CompressionFor("a.txt"))
}

func TestRoundTrip(Te *testing.T) {
	dir := Te.TempDir()
	want := graphs(Te)
	for _, name := range []string{"plain.txt", "archive.gz", "archive.zst"} {
		Te.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			W, err := NewWriter(path, map[string]string{"source": "test", "count": "4"})
			require.NoError(t, err)
			for _, M := range want {
				require.NoError(t, W.Write(M))
			}
			require.NoError(t, W.Close())
			assert.Error(t, W.Write(want[0]))

			R, header, err := New(path)
			require.NoError(t, err)
			defer R.Close()
			assert.Equal(t, map[string]string{"source": "test", "count": "4"}, header)
			got, err := R.ReadAll()
			require.NoError(t, err)
			require.Len(t, got, len(want))
			for i := range want {
				assert.True(t, want[i].Equal(got[i]))
			}
			_, err = R.Next()
			assert.Equal(t, io.EOF, err)
		})
	}
}

func TestReaderSkipsComments(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "hand.txt")
	content := "6,8 0_1_2\n\n# a comment in the middle\n1,1 0_1_1\n"
	require.NoError(Te, os.WriteFile(path, []byte(content), 0o644))
	R, header, err := New(path)
	require.NoError(Te, err)
	defer R.Close()
	assert.Nil(Te, header)
	got, err := R.ReadAll()
	require.NoError(Te, err)
	require.Len(Te, got, 2)
	assert.Equal(Te, "6,8 0_1_2", got[0].Blob())
	assert.Equal(Te, "1,1 0_1_1", got[1].Blob())
}

func TestReaderBadLine(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "bad.txt")
	require.NoError(Te, os.WriteFile(path, []byte("6,8 0_1_2\n6,x 0_1_1\n"), 0o644))
	R, _, err := New(path)
	require.NoError(Te, err)
	defer R.Close()
	_, err = R.Next()
	require.NoError(Te, err)
	_, err = R.Next()
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), "line 2")
	_, _, err = New(filepath.Join(Te.TempDir(), "missing.txt"))
	assert.Error(Te, err)

	R2, _, err := New(path)
	require.NoError(Te, err)
	defer R2.Close()
	got, err := R2.ReadAll()
	require.Error(Te, err)
	assert.Len(Te, got, 1)
	e, ok := err.(*Error)
	require.True(Te, ok)
	assert.Equal(Te, []string{"Next", "ReadAll"}, e.Decorate(""))
	assert.Equal(Te, path, e.FileName())
}

func TestWriterHeaderFailure(Te *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		Te.Skip("no /dev/full on this system")
	}
	//the header is larger than the write buffer, so it reaches the device, which is full.
	_, err := NewWriter("/dev/full", map[string]string{"big": strings.Repeat("x", 8192)})
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), "header")
}
