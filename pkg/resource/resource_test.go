package resource

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemProviderOpensAndLists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("world"), 0o644))

	p := NewFilesystemProvider(dir)

	data, err := Bytes(p, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	names, err := p.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "sub/b.txt"}, names)
}

func TestEmbeddedProviderOpensAndLists(t *testing.T) {
	p := NewEmbeddedProvider(map[string][]byte{
		"shaders/basic.vert": []byte("void main() {}"),
	})

	data, err := Bytes(p, "shaders/basic.vert")
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", string(data))

	_, err = p.Open("missing.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCompositeProviderPrefersEarlierProvider(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared.txt"), []byte("from-disk"), 0o644))

	composite := New(dir, map[string][]byte{
		"shared.txt": []byte("from-embed"),
		"only-embed.txt": []byte("embed-only"),
	})

	data, err := Bytes(composite, "shared.txt")
	require.NoError(t, err)
	assert.Equal(t, "from-disk", string(data), "the filesystem provider must win when both have the name")

	data, err = Bytes(composite, "only-embed.txt")
	require.NoError(t, err)
	assert.Equal(t, "embed-only", string(data), "the embedded provider must serve names the filesystem doesn't have")
}

func TestNulTerminatedStringTruncatesAtFirstNul(t *testing.T) {
	p := NewEmbeddedProvider(map[string][]byte{
		"name.txt": append([]byte("hello"), 0, 'x', 'x'),
	})

	s, err := NulTerminatedString(p, "name.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestUTF8StringRejectsEmbeddedNul(t *testing.T) {
	p := NewEmbeddedProvider(map[string][]byte{
		"bad.glsl": append([]byte("void main() {"), 0, '}'),
	})

	_, err := UTF8String(p, "bad.glsl")
	assert.Error(t, err)
}
