package words

import (
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// imageOverrides lists words whose picture does not follow the <word>.jpg convention.
var imageOverrides = map[string]string{
	"dictionary": "university.jpg",
}

// ImagePath returns the asset path (relative to the asset root) for word.
// Only words present in a loaded pool have an image.
func ImagePath(word string) (string, bool) {
	if !known(word) {
		return "", false
	}
	name := word + ".jpg"
	if o, ok := imageOverrides[word]; ok {
		name = o
	}
	return path.Join("images", name), true
}

func known(word string) bool {
	for _, l := range Levels {
		for _, w := range pools[l] {
			if w == word {
				return true
			}
		}
	}
	return false
}

// ImageResolver maps words to picture files under an asset directory.
type ImageResolver struct {
	Dir string
}

// Resolve returns the on-disk path of word's picture, or "" when the word has
// no picture or the file is missing.
func (r ImageResolver) Resolve(word string) string {
	rel, ok := ImagePath(word)
	if !ok || r.Dir == "" {
		return ""
	}
	p := filepath.Join(r.Dir, filepath.FromSlash(rel))
	if _, err := os.Stat(p); err != nil {
		log.Debug().Str("word", word).Str("path", p).Msg("image asset missing")
		return ""
	}
	return p
}
