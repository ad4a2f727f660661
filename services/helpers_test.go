package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"startup-registration/common"
	"startup-registration/models"
	"startup-registration/repository"
)

type savedBlob struct {
	contentType string
	data        []byte
}

type fakeBlobStore struct {
	mu      sync.Mutex
	blobs   map[string]savedBlob
	saveErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: map[string]savedBlob{}}
}

func (f *fakeBlobStore) Save(_ context.Context, key, contentType string, r io.Reader, _ int64) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = savedBlob{contentType: contentType, data: data}
	return nil
}

func (f *fakeBlobStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blobs[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b.data)), nil
}

func (f *fakeBlobStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.blobs)
}

// failingRepo wraps the memory repository and fails selected calls.
type failingRepo struct {
	*repository.MemorySubmissionRepository
	insertErr error
	findErr   error
	countErr  error
	markErr   error
	markCalls int
}

func (r *failingRepo) Insert(ctx context.Context, s *models.Submission) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	return r.MemorySubmissionRepository.Insert(ctx, s)
}

func (r *failingRepo) FindByEmail(ctx context.Context, email string) (*models.Submission, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.MemorySubmissionRepository.FindByEmail(ctx, email)
}

func (r *failingRepo) Count(ctx context.Context) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.MemorySubmissionRepository.Count(ctx)
}

func (r *failingRepo) MarkPaidByEmail(ctx context.Context, email string) (*models.Submission, bool, error) {
	r.markCalls++
	if r.markErr != nil {
		return nil, false, r.markErr
	}
	return r.MemorySubmissionRepository.MarkPaidByEmail(ctx, email)
}

func newFailingRepo() *failingRepo {
	return &failingRepo{MemorySubmissionRepository: repository.NewMemorySubmissionRepository()}
}

type fakeGateway struct {
	mu   sync.Mutex
	reqs []models.OrderRequest
	err  error
}

func (g *fakeGateway) CreateOrder(_ context.Context, req models.OrderRequest) (*models.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reqs = append(g.reqs, req)
	if g.err != nil {
		return nil, g.err
	}
	return &models.Order{
		ID:       "order_test",
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

type fakeNotifier struct {
	sent    chan string
	err     error
	release chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan string, 10)}
}

func (n *fakeNotifier) PaymentConfirmed(_ context.Context, s *models.Submission) error {
	n.sent <- s.Email
	if n.release != nil {
		<-n.release
	}
	return n.err
}

func fileUpload(field, filename, content string) FileUpload {
	return FileUpload{
		Field:       field,
		Filename:    filename,
		ContentType: "application/octet-stream",
		Size:        int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

var errBoom = errors.New("boom")
