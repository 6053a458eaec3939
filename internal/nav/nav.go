package nav

import (
	"net/url"
	"strings"
	"sync"

	"github.com/saltpay/stencil/internal/model"
	"github.com/saltpay/stencil/internal/util"
)

// Navigator moves the user to a route.
type Navigator interface {
	Push(path string)
}

// DocumentPath is the route of a document or template.
func DocumentPath(doc *model.Document) string {
	return "/doc/" + util.Slugify(doc.Title) + "-" + doc.URLID
}

// URL joins a route onto baseURL. An empty or invalid baseURL returns the path.
func URL(baseURL, path string) string {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		return path
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return path
	}
	return strings.TrimRight(u.String(), "/") + path
}

// History records pushed routes.
type History struct {
	mu      sync.Mutex
	entries []string
}

func (h *History) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, path)
}

// Current returns the last pushed route.
func (h *History) Current() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

// Entries returns a copy of every pushed route, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}
