package document

import (
	"container/list"
	"sync"
)

// DefaultMaxDocuments bounds the store when no size is configured.
const DefaultMaxDocuments = 100

// Store is a bounded LRU cache of open documents, safe for concurrent use.
// Opening a document past capacity evicts the least recently used one.
type Store struct {
	max       int
	documents map[string]*list.Element // URI → element holding *Document
	lru       *list.List
	mu        sync.Mutex
}

// NewStore creates a store holding at most max documents.
func NewStore(max int) *Store {
	if max <= 0 {
		max = DefaultMaxDocuments
	}
	return &Store{
		max:       max,
		documents: make(map[string]*list.Element),
		lru:       list.New(),
	}
}

// Put stores doc under its URI and marks it most recently used. It returns the
// URI of an evicted document, or "" if nothing was evicted.
func (s *Store) Put(doc *Document) (evicted string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.documents[doc.URI]; ok {
		elem.Value = doc
		s.lru.MoveToFront(elem)
		return ""
	}

	if len(s.documents) >= s.max {
		if oldest := s.lru.Back(); oldest != nil {
			evicted = oldest.Value.(*Document).URI
			s.lru.Remove(oldest)
			delete(s.documents, evicted)
		}
	}

	s.documents[doc.URI] = s.lru.PushFront(doc)
	return evicted
}

// Get returns the document for uri and marks it most recently used.
func (s *Store) Get(uri string) (*Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.documents[uri]
	if !ok {
		return nil, false
	}
	s.lru.MoveToFront(elem)
	return elem.Value.(*Document), true
}

// Delete forgets uri. Deleting an unknown URI is a no-op.
func (s *Store) Delete(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.documents[uri]; ok {
		s.lru.Remove(elem)
		delete(s.documents, uri)
	}
}

// Len returns the number of cached documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.documents)
}
