package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikitavr/sociable/internal/models"
	"github.com/nikitavr/sociable/internal/security"
	"github.com/nikitavr/sociable/pkg/errors"
	"github.com/nikitavr/sociable/pkg/utils"
)

// AllowedAvatarTypes are the accepted upload extensions
var AllowedAvatarTypes = []string{".png", ".jpg", ".jpeg"}

// AvatarStore keeps uploaded avatars in a directory on disk. Stored names
// are random, so an uploaded filename never reaches the filesystem.
type AvatarStore struct {
	dir         string
	defaultPath string
	maxSize     int64
}

func NewAvatarStore(dir string, maxSize int64) (*AvatarStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create avatar directory")
	}
	return &AvatarStore{
		dir:         dir,
		defaultPath: models.DefaultAvatarPath,
		maxSize:     maxSize,
	}, nil
}

// Save validates and stores an uploaded avatar, returning the stored file
// reference to persist on the user record
func (s *AvatarStore) Save(filename string, size int64, r io.Reader) (string, error) {
	if !security.ValidateFileType(filename, AllowedAvatarTypes) {
		return "", errors.New(errors.ErrCodeValidation, "images only (png, jpg, jpeg)")
	}
	if !security.ValidateFileSize(size, s.maxSize) {
		return "", errors.New(errors.ErrCodeValidation, "file is empty or too large")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	stored := utils.GenerateRandomID(16) + ext

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to store avatar")
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(r, s.maxSize)); err != nil {
		os.Remove(f.Name())
		return "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to store avatar")
	}

	return stored, nil
}

// Path resolves a user's avatar to a file path, falling back to the default
// avatar when none was uploaded
func (s *AvatarStore) Path(user *models.User) string {
	if !user.HasAvatar() {
		return s.defaultPath
	}
	// Stored references are generated server side, but never trust a stored
	// name to escape the avatar directory.
	return filepath.Join(s.dir, filepath.Base(user.Image))
}

// Remove deletes a previously stored avatar file
func (s *AvatarStore) Remove(stored string) error {
	if stored == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(stored)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove avatar")
	}
	return nil
}
