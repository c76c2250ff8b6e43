package localstate

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/kinovzor/kinovzor-client/internal/types"
)

// FileStore reads and writes the session file. A missing, unreadable, or
// malformed file always degrades to the anonymous session; it never blocks
// startup.
type FileStore struct {
	path string
}

// NewFileStore builds a store rooted at the default session path.
func NewFileStore() (*FileStore, error) {
	path, err := SessionPath()
	if err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

// NewFileStoreAt builds a store for an explicit file path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Load restores the persisted session. Any failure falls back to anonymous:
// a corrupt file must never grant an identity.
func (s *FileStore) Load() types.Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("localstate: session file unreadable, starting anonymous")
		}
		return types.AnonymousSession()
	}

	var sess types.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("localstate: session file malformed, starting anonymous")
		return types.AnonymousSession()
	}
	if !sess.Valid() {
		log.Warn().Str("path", s.path).Msg("localstate: persisted session invalid, starting anonymous")
		return types.AnonymousSession()
	}
	return sess
}

// Save writes the session atomically via a temp file and rename.
func (s *FileStore) Save(sess types.Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Clear removes the persisted session. Missing file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
