package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/anashammo/whisper-ui/internal/app/enhancement"
	"github.com/anashammo/whisper-ui/internal/app/recognition"
	"github.com/anashammo/whisper-ui/internal/app/repository"
	"github.com/anashammo/whisper-ui/internal/domain/entity"
)

type memAudioFiles struct {
	mu    sync.Mutex
	files map[string]entity.AudioFile
}

func newMemAudioFiles() *memAudioFiles {
	return &memAudioFiles{files: make(map[string]entity.AudioFile)}
}

func (m *memAudioFiles) Create(ctx context.Context, f *entity.AudioFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[f.ID] = *f
	return nil
}

func (m *memAudioFiles) GetByID(ctx context.Context, id string) (*entity.AudioFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := f
	return &copied, nil
}

func (m *memAudioFiles) GetAll(ctx context.Context, limit, offset int) ([]*entity.AudioFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*entity.AudioFile, 0, len(m.files))
	for id := range m.files {
		copied := m.files[id]
		all = append(all, &copied)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].UploadedAt.After(all[j].UploadedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *memAudioFiles) Update(ctx context.Context, f *entity.AudioFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[f.ID]; !ok {
		return repository.ErrNotFound
	}
	m.files[f.ID] = *f
	return nil
}

func (m *memAudioFiles) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.files, id)
	return nil
}

type memTranscriptions struct {
	mu      sync.Mutex
	records map[string]entity.Transcription
	order   []string
}

func newMemTranscriptions() *memTranscriptions {
	return &memTranscriptions{records: make(map[string]entity.Transcription)}
}

func (m *memTranscriptions) Create(ctx context.Context, t *entity.Transcription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[t.ID] = *t
	m.order = append(m.order, t.ID)
	return nil
}

func (m *memTranscriptions) GetByID(ctx context.Context, id string) (*entity.Transcription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := t
	return &copied, nil
}

func (m *memTranscriptions) GetAll(ctx context.Context, limit, offset int) ([]*entity.Transcription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]*entity.Transcription, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if t, ok := m.records[m.order[i]]; ok {
			copied := t
			all = append(all, &copied)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if offset >= len(all) {
		return []*entity.Transcription{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *memTranscriptions) GetByAudioFileID(ctx context.Context, audioFileID string) ([]*entity.Transcription, error) {
	all, _ := m.GetAll(ctx, len(m.order)+1, 0)
	out := make([]*entity.Transcription, 0)
	for _, t := range all {
		if t.AudioFileID == audioFileID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTranscriptions) Update(ctx context.Context, t *entity.Transcription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[t.ID]; !ok {
		return repository.ErrNotFound
	}
	m.records[t.ID] = *t
	return nil
}

func (m *memTranscriptions) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

type fakeStorage struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	saveErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{blobs: make(map[string][]byte)}
}

func (f *fakeStorage) Save(ctx context.Context, r io.Reader, id, filename string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	path := "mem://" + id + strings.ToLower(filepath.Ext(filename))
	f.mu.Lock()
	f.blobs[path] = data
	f.mu.Unlock()
	return path, nil
}

func (f *fakeStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	f.mu.Lock()
	data, ok := f.blobs[path]
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("blob %s not found", path)
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (f *fakeStorage) LocalPath(ctx context.Context, path string) (string, func(), error) {
	f.mu.Lock()
	_, ok := f.blobs[path]
	f.mu.Unlock()
	if !ok {
		return "", func() {}, fmt.Errorf("blob %s not found", path)
	}
	return path, func() {}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error {
	f.mu.Lock()
	delete(f.blobs, path)
	f.mu.Unlock()
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	f.mu.Lock()
	_, ok := f.blobs[path]
	f.mu.Unlock()
	return ok, nil
}

func (f *fakeStorage) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.blobs)
}

type fakeRecognizer struct {
	duration    float64
	durationErr error
	result      *recognition.Result
	err         error
	requests    []recognition.Request
}

func (f *fakeRecognizer) Transcribe(ctx context.Context, req recognition.Request) (*recognition.Result, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &recognition.Result{Text: "hello world", Language: "en", Duration: f.duration}, nil
}

func (f *fakeRecognizer) AudioDuration(ctx context.Context, path string) (float64, error) {
	if f.durationErr != nil {
		return 0, f.durationErr
	}
	return f.duration, nil
}

type fakeEnhancer struct {
	result   string
	err      error
	requests []enhancement.Request
}

func (f *fakeEnhancer) Enhance(ctx context.Context, req enhancement.Request) (*enhancement.Result, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &enhancement.Result{EnhancedText: f.result}, nil
}

type fixture struct {
	service        *Service
	audioFiles     *memAudioFiles
	transcriptions *memTranscriptions
	storage        *fakeStorage
	recognizer     *fakeRecognizer
	enhancer       *fakeEnhancer
}

func newFixture() *fixture {
	f := &fixture{
		audioFiles:     newMemAudioFiles(),
		transcriptions: newMemTranscriptions(),
		storage:        newFakeStorage(),
		recognizer:     &fakeRecognizer{duration: 10},
		enhancer:       &fakeEnhancer{result: "Hello, world."},
	}
	f.service = NewService(
		f.audioFiles, f.transcriptions, f.storage,
		f.recognizer, f.enhancer, nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		DefaultLimits())
	return f
}

func uploadParams(opts ...func(*TranscribeParams)) TranscribeParams {
	p := TranscribeParams{
		Filename:  "voice.mp3",
		MIMEType:  "audio/mpeg",
		SizeBytes: 2048,
		Content:   strings.NewReader("audio bytes"),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
