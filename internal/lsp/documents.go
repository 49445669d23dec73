package lsp

import (
	"strings"
	"sync"
)

// document is an open preference file and its latest analysis.
type document struct {
	version int32
	text    string
	result  *AnalysisResult
}

// DocumentStore holds open documents keyed by URI. Every stored text is
// analyzed once, so handlers share a single result per edit.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*document)}
}

// Open stores content and returns its analysis.
func (s *DocumentStore) Open(uri string, version int32, content string) *AnalysisResult {
	result := Analyze(filenameFromURI(uri), content)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = &document{version: version, text: content, result: result}
	return result
}

// Update replaces the content of an open document. Changes older than the
// stored version are dropped and report false.
func (s *DocumentStore) Update(uri string, version int32, content string) (*AnalysisResult, bool) {
	s.mu.RLock()
	doc, ok := s.docs[uri]
	s.mu.RUnlock()
	if ok && version < doc.version {
		return nil, false
	}

	result := Analyze(filenameFromURI(uri), content)

	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[uri]; ok && version < doc.version {
		return nil, false
	}
	s.docs[uri] = &document{version: version, text: content, result: result}
	return result, true
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *DocumentStore) Get(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return "", false
	}
	return doc.text, true
}

// Version returns the version of the stored text.
func (s *DocumentStore) Version(uri string) (int32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return 0, false
	}
	return doc.version, true
}

// Result returns the analysis of the stored text, or nil if the document
// is not open.
func (s *DocumentStore) Result(uri string) *AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return nil
	}
	return doc.result
}

// filenameFromURI returns the last path element of uri for use in
// diagnostic ranges.
func filenameFromURI(uri string) string {
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
