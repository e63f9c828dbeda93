package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cafe/internal/models"
	"cafe/internal/notify"
	"cafe/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore records calls and answers from canned data.
type fakeStore[T any] struct {
	mu      sync.Mutex
	created []T
	found   []T
	byID    map[primitive.ObjectID]T
	updated *T
	filters []interface{}
	sets    []bson.M
	deleted []primitive.ObjectID
	err     error
}

func (s *fakeStore[T]) Create(_ context.Context, doc *T) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return primitive.NilObjectID, s.err
	}
	s.created = append(s.created, *doc)
	return primitive.NewObjectID(), nil
}

func (s *fakeStore[T]) Get(_ context.Context, id primitive.ObjectID) (*T, error) {
	if s.err != nil {
		return nil, s.err
	}
	doc, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &doc, nil
}

func (s *fakeStore[T]) Find(_ context.Context, filter interface{}, _ ...*options.FindOptions) ([]T, error) {
	s.filters = append(s.filters, filter)
	if s.err != nil {
		return nil, s.err
	}
	if s.found == nil {
		return []T{}, nil
	}
	return s.found, nil
}

func (s *fakeStore[T]) Update(_ context.Context, _ primitive.ObjectID, set bson.M) (*T, error) {
	s.sets = append(s.sets, set)
	if s.err != nil {
		return nil, s.err
	}
	if s.updated == nil {
		return nil, repository.ErrNotFound
	}
	return s.updated, nil
}

func (s *fakeStore[T]) Delete(_ context.Context, id primitive.ObjectID) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	records []notify.Record
	ids     []string
	results []notify.Result
}

func (n *recordingNotifier) Dispatch(_ context.Context, rec notify.Record, id string) []notify.Result {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.records = append(n.records, rec)
	n.ids = append(n.ids, id)
	return n.results
}

type auditEntry struct {
	email, action, details string
}

type memoryAudit struct {
	entries []auditEntry
}

func (m *memoryAudit) Record(_ context.Context, email, action, details string) error {
	m.entries = append(m.entries, auditEntry{email, action, details})
	return nil
}

type memorySettings struct {
	settings   *models.Settings
	err        error
	recipients []string
	sets       []bson.M
}

func (m *memorySettings) Load(context.Context) (*models.Settings, error) {
	return m.settings, m.err
}

func (m *memorySettings) AddRecipient(_ context.Context, chatID string) error {
	if m.err != nil {
		return m.err
	}
	m.recipients = append(m.recipients, chatID)
	return nil
}

func (m *memorySettings) Update(_ context.Context, set bson.M) (*models.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.sets = append(m.sets, set)
	s := models.Settings{}
	if ids, ok := set["telegramChatIds"].([]string); ok {
		s.RecipientIDs = ids
	}
	return &s, nil
}

// perform routes one request through a router holding only h.
func perform(method, pattern, path, body string, h gin.HandlerFunc, headers ...string) *httptest.ResponseRecorder {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Handle(method, pattern, h)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func performOn(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
