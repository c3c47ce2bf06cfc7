// Package swapitest serves a small recorded SWAPI snapshot for tests.
//
// Entity URLs in the snapshot point back at the test server, so references
// can be followed exactly like against the real API.
package swapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/s0up4200/holocron/swapi"
)

const apiPrefix = "/api/"

// Server is a fake SWAPI backed by an in-memory snapshot
type Server struct {
	*httptest.Server

	// PageSize is the number of results per collection page
	PageSize int

	data     map[string][]swapi.Entity
	mu       sync.Mutex
	failures map[string]int
	hits     map[string]int
}

// NewServer starts a fake SWAPI and closes it when the test ends
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		PageSize: 10,
		failures: make(map[string]int),
		hits:     make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	s.data = snapshot(s.BaseURL())
	t.Cleanup(s.Close)

	return s
}

// BaseURL returns the API root, with trailing slash
func (s *Server) BaseURL() string {
	return s.URL + apiPrefix
}

// Ref returns the canonical URL of an entity
func (s *Server) Ref(category string, id int) string {
	return fmt.Sprintf("%s%s/%d/", s.BaseURL(), category, id)
}

// FailWith makes every request to path answer with status. The trailing
// slash is optional.
func (s *Server) FailWith(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[normalizePath(path)] = status
}

// Hits returns how many requests reached path, with or without trailing slash
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[normalizePath(path)]
}

func normalizePath(path string) string {
	return strings.TrimRight(path, "/") + "/"
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	path := normalizePath(r.URL.Path)

	s.mu.Lock()
	s.hits[path]++
	status, failing := s.failures[path]
	s.mu.Unlock()

	if failing {
		writeJSON(w, status, map[string]string{"detail": http.StatusText(status)})
		return
	}

	if r.Method != http.MethodGet || !strings.HasPrefix(path, apiPrefix) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found"})
		return
	}

	rest := strings.Trim(strings.TrimPrefix(path, apiPrefix), "/")
	if rest == "" {
		root := make(map[string]string, len(s.data))
		for category := range s.data {
			root[category] = s.BaseURL() + category + "/"
		}
		writeJSON(w, http.StatusOK, root)
		return
	}

	parts := strings.Split(rest, "/")
	entities, ok := s.data[parts[0]]
	if !ok || len(parts) > 2 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found"})
		return
	}

	if len(parts) == 2 {
		want := s.BaseURL() + parts[0] + "/" + parts[1] + "/"
		for _, e := range entities {
			if e.URL() == want {
				writeJSON(w, http.StatusOK, e)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found"})
		return
	}

	s.writePage(w, r, parts[0], entities)
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, category string, entities []swapi.Entity) {
	query := r.URL.Query()

	if term := strings.ToLower(query.Get("search")); term != "" {
		matched := make([]swapi.Entity, 0, len(entities))
		for _, e := range entities {
			if strings.Contains(strings.ToLower(e.Name()), term) {
				matched = append(matched, e)
			}
		}
		entities = matched
	}

	page := 1
	if p, err := strconv.Atoi(query.Get("page")); err == nil && p > 0 {
		page = p
	}

	size := max(s.PageSize, 1)
	start := min((page-1)*size, len(entities))
	end := min(start+size, len(entities))

	resp := swapi.Page{
		Count:   len(entities),
		Results: append([]swapi.Entity{}, entities[start:end]...),
	}
	if end < len(entities) {
		resp.Next = s.pageLink(category, query, page+1)
	}
	if page > 1 {
		resp.Previous = s.pageLink(category, query, page-1)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) pageLink(category string, query url.Values, page int) *string {
	q := url.Values{}
	for key, values := range query {
		q[key] = values
	}
	q.Set("page", strconv.Itoa(page))

	link := s.BaseURL() + category + "/?" + q.Encode()
	return &link
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
