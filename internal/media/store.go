package media

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Store keeps uploaded book attachments on local disk under a single root,
// mirroring the layout books/, pdfs/, audio/.
type Store struct {
	root string
	log  *zap.Logger
}

func NewStore(root string, log *zap.Logger) (*Store, error) {
	for _, dir := range []string{"books", "pdfs", "audio"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, errors.Wrap(err, "media.NewStore")
		}
	}
	return &Store{root: root, log: log.Named("media")}, nil
}

// Save writes the file under root/dir and returns the stored relative path.
func (s *Store) Save(dir, name string, r io.Reader) (string, error) {
	rel := filepath.Join(dir, filepath.Base(name))
	f, err := os.Create(filepath.Join(s.root, rel))
	if err != nil {
		return "", errors.Wrap(err, "media.Save")
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", errors.Wrap(err, "media.Save copy")
	}
	return rel, nil
}

// Remove deletes a stored attachment. Missing files are not an error:
// the row is the source of truth and cleanup must not block deletion.
func (s *Store) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	full := filepath.Join(s.root, filepath.Clean(rel))
	if !strings.HasPrefix(full, s.root) {
		return errors.Errorf("media.Remove: path %q escapes media root", rel)
	}
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			s.log.Warn("attachment already gone", zap.String("path", rel))
			return nil
		}
		return errors.Wrap(err, "media.Remove")
	}
	return nil
}
