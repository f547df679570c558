package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/Dosada05/tournament-results/brackets"
	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []brackets.WebSocketMessage
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if msg, ok := message.(brackets.WebSocketMessage); ok {
		b.messages = append(b.messages, msg)
	}
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	types := make([]string, 0, len(b.messages))
	for _, m := range b.messages {
		types = append(types, m.Type)
	}
	return types
}

type recordingNotifier struct {
	calls     int
	standings []models.Standing
	reportURL string
	err       error
}

func (n *recordingNotifier) NotifyStandings(ctx context.Context, standings []models.Standing, reportURL string) error {
	n.calls++
	n.standings = standings
	n.reportURL = reportURL
	return n.err
}

type memoryUploader struct {
	location string
	err      error
	uploads  map[string]string
}

func newMemoryUploader(location string) *memoryUploader {
	return &memoryUploader{location: location, uploads: map[string]string{}}
}

func (u *memoryUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.uploads[key] = string(body)
	return &storage.UploadResult{Key: key, Location: u.location + "/" + key}, nil
}

func (u *memoryUploader) Delete(ctx context.Context, key string) error {
	delete(u.uploads, key)
	return nil
}

func (u *memoryUploader) GetPublicURL(key string) string {
	return u.location + "/" + key
}

var errStoreDown = errors.New("store is down")
