package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/tevez07b9/notebooklm/internal/entity"
	"github.com/tevez07b9/notebooklm/internal/repository/contract"
	"github.com/tevez07b9/notebooklm/internal/repository/unitofwork"
	"github.com/tevez07b9/notebooklm/pkg/embedding"
	"github.com/tevez07b9/notebooklm/pkg/events"
	"github.com/tevez07b9/notebooklm/pkg/extract"
	"github.com/tevez07b9/notebooklm/pkg/llm"
)

// In-memory repository fakes. Documents and pages live in maps keyed by the
// document token so tests can assert on final state.

type fakeDocumentRepo struct {
	mu   sync.Mutex
	docs map[string]*entity.Document

	createCalls  int
	findAllCalls int
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]*entity.Document)}
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	copied := *doc
	r.docs[doc.DocumentId] = &copied
	return nil
}

func (r *fakeDocumentRepo) FindByDocumentId(ctx context.Context, documentId string) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[documentId]
	if !ok {
		return nil, nil
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context) ([]*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findAllCalls++
	out := make([]*entity.Document, 0, len(r.docs))
	for _, d := range r.docs {
		copied := *d
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, documentId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, documentId)
	return nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.docs)), nil
}

type fakeDocumentPageRepo struct {
	mu    sync.Mutex
	pages map[string][]*entity.DocumentPage

	createBatchCalls int
}

func newFakeDocumentPageRepo() *fakeDocumentPageRepo {
	return &fakeDocumentPageRepo{pages: make(map[string][]*entity.DocumentPage)}
}

func (r *fakeDocumentPageRepo) CreateBatch(ctx context.Context, pages []*entity.DocumentPage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createBatchCalls++
	for _, p := range pages {
		copied := *p
		r.pages[p.DocumentId] = append(r.pages[p.DocumentId], &copied)
	}
	return nil
}

func (r *fakeDocumentPageRepo) FindByDocumentId(ctx context.Context, documentId string) ([]*entity.DocumentPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.DocumentPage, len(r.pages[documentId]))
	for i, p := range r.pages[documentId] {
		copied := *p
		out[i] = &copied
	}
	return out, nil
}

func (r *fakeDocumentPageRepo) DeleteByDocumentId(ctx context.Context, documentId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pages, documentId)
	return nil
}

type fakeUnitOfWork struct {
	docRepo  *fakeDocumentRepo
	pageRepo *fakeDocumentPageRepo

	begins    int
	commits   int
	rollbacks int
	inTx      bool
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	if u.inTx {
		return fmt.Errorf("transaction already started")
	}
	u.begins++
	u.inTx = true
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	u.commits++
	u.inTx = false
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to rollback")
	}
	u.rollbacks++
	u.inTx = false
	return nil
}

func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return u.docRepo
}

func (u *fakeUnitOfWork) DocumentPageRepository() contract.DocumentPageRepository {
	return u.pageRepo
}

type fakeRepositoryFactory struct {
	uow *fakeUnitOfWork
}

func newFakeRepositoryFactory() *fakeRepositoryFactory {
	return &fakeRepositoryFactory{
		uow: &fakeUnitOfWork{
			docRepo:  newFakeDocumentRepo(),
			pageRepo: newFakeDocumentPageRepo(),
		},
	}
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// Provider stubs.

type stubExtractor struct {
	pages []extract.Page
	err   error
}

func (s *stubExtractor) Extract(data []byte) ([]extract.Page, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pages, nil
}

type stubEmbeddingProvider struct {
	mu       sync.Mutex
	values   []float32
	failText string // fail when asked to embed this exact text
	calls    int
}

func (s *stubEmbeddingProvider) Generate(text string, taskType string) (*embedding.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failText != "" && text == s.failText {
		return nil, &embedding.Error{Provider: "stub", Err: fmt.Errorf("embedding failed")}
	}
	return &embedding.Response{Values: s.values}, nil
}

type stubLLMProvider struct {
	mu           sync.Mutex
	chatReply    string
	generateText string
	chatErr      error
	generateErr  error
	chatCalls    int
	lastPrompt   string
}

func (s *stubLLMProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatCalls++
	if len(history) > 0 {
		s.lastPrompt = history[len(history)-1].Content
	}
	if s.chatErr != nil {
		return "", s.chatErr
	}
	return s.chatReply, nil
}

func (s *stubLLMProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generateErr != nil {
		return "", s.generateErr
	}
	return s.generateText, nil
}

type capturingPublisher struct {
	mu        sync.Mutex
	published []events.Event
	err       error
}

func (p *capturingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func (p *capturingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.published))
	for i, e := range p.published {
		types[i] = e.EventType()
	}
	return types
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
