package storage

import (
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
)

// ArticleStore keeps offline copies of article text on disk.
type ArticleStore struct {
	d *diskv.Diskv
}

// NewArticleStore creates an ArticleStore rooted at dir.
func NewArticleStore(dir string) *ArticleStore {
	return &ArticleStore{d: diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    shardTransform,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

// articleKey derives a stable file name from a link.
func articleKey(link string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)).String()
}

// shardTransform spreads files over 256 directories.
func shardTransform(key string) []string {
	return []string{key[:2]}
}

// Put stores the text for link, replacing any previous copy.
func (s *ArticleStore) Put(link string, text []byte) error {
	return s.d.Write(articleKey(link), text)
}

// Get returns the stored text for link.
// Returns ErrNoData if there is no copy.
func (s *ArticleStore) Get(link string) ([]byte, error) {
	data, err := s.d.Read(articleKey(link))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoData
	}
	return data, err
}

// Has reports whether a copy exists for link.
func (s *ArticleStore) Has(link string) bool {
	return s.d.Has(articleKey(link))
}

// Delete removes the copy for link. Missing copies are ignored.
func (s *ArticleStore) Delete(link string) error {
	err := s.d.Erase(articleKey(link))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
