package words

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_EmbeddedPoolsAreDeduplicated(t *testing.T) {
	require.NoError(t, Init(Files{}))

	easy := Pool(Easy)
	assert.Len(t, easy, 29, "hat is listed twice in the embedded easy pool")
	seen := map[string]bool{}
	for _, w := range easy {
		assert.False(t, seen[w], "duplicate %q", w)
		seen[w] = true
	}

	stats := Stats()
	assert.Equal(t, 30, stats[Medium])
	assert.Equal(t, 30, stats[Hard])
}

func TestPool_ReturnsCopy(t *testing.T) {
	require.NoError(t, Init(Files{}))
	p := Pool("easy")
	require.NotEmpty(t, p)
	p[0] = "zzz"
	assert.NotEqual(t, "zzz", Pool(Easy)[0])
	assert.Nil(t, Pool("impossible"))
}

func TestLoad_FileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hard.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nZebra\nzebra\nx-ray\n\nquokka\n"), 0o644))

	got, err := load(Files{Hard: path})
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "quokka"}, got[Hard])
	assert.NotEmpty(t, got[Easy])
}

func TestLoad_EmptyOverrideFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "easy.txt")
	require.NoError(t, os.WriteFile(path, []byte("123\n"), 0o644))

	_, err := load(Files{Easy: path})
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := load(Files{Medium: filepath.Join(t.TempDir(), "nope.txt")})
	assert.Error(t, err)
}

func TestLevel(t *testing.T) {
	l, ok := Level(" medium ")
	assert.True(t, ok)
	assert.Equal(t, Medium, l)

	_, ok = Level("expert")
	assert.False(t, ok)
}

func TestEmojiFor(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Contains(t, EmojiSet('C'), EmojiFor('c', rng))
	assert.Equal(t, Fallback, EmojiFor(0, rng))
	assert.Equal(t, Fallback, EmojiFor('7', rng))
	for r := 'A'; r <= 'Z'; r++ {
		assert.NotEmpty(t, EmojiSet(r), "letter %c", r)
	}
}

func TestImagePath(t *testing.T) {
	require.NoError(t, Init(Files{}))

	p, ok := ImagePath("cat")
	assert.True(t, ok)
	assert.Equal(t, "images/cat.jpg", p)

	p, ok = ImagePath("dictionary")
	assert.True(t, ok)
	assert.Equal(t, "images/university.jpg", p)

	_, ok = ImagePath("spaceship")
	assert.False(t, ok)
}

func TestImageResolver(t *testing.T) {
	require.NoError(t, Init(Files{}))
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "cat.jpg"), []byte("jpg"), 0o644))

	r := ImageResolver{Dir: dir}
	assert.Equal(t, filepath.Join(dir, "images", "cat.jpg"), r.Resolve("cat"))
	assert.Empty(t, r.Resolve("dog"), "missing file is tolerated")
	assert.Empty(t, r.Resolve("spaceship"))
	assert.Empty(t, ImageResolver{}.Resolve("cat"))
}
