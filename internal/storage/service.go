package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

type service struct {
	store ObjectStore
	now   func() time.Time
}

func NewService(store ObjectStore) Service {
	return &service{store: store, now: time.Now}
}

// ObjectKey: путь в бакете: audio/<owner>/<date>/<uuid>.<ext>
func (s *service) ObjectKey(owner, ext string) string {
	owner = strings.Trim(path.Clean("/"+owner), "/")
	if owner == "" {
		owner = "anonymous"
	}
	date := s.now().UTC().Format("2006-01-02")
	return fmt.Sprintf("audio/%s/%s/%s.%s", owner, date, uuid.NewString(), strings.TrimPrefix(ext, "."))
}

func (s *service) SaveAudio(ctx context.Context, owner string, audio []byte, contentType string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("empty audio")
	}
	key := s.ObjectKey(owner, extension(contentType))
	return s.store.PutObject(ctx, key, bytes.NewReader(audio), int64(len(audio)), contentType)
}

func extension(contentType string) string {
	switch contentType {
	case "audio/ogg", "audio/opus":
		return "ogg"
	case "audio/wav", "audio/x-wav":
		return "wav"
	default:
		return "mp3"
	}
}
