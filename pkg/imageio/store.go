package imageio

import (
	"image"
	"sync"

	"github.com/matzehuels/illustgrid/pkg/grid"
)

type storeKey struct {
	id   string
	w, h int
}

// Store holds decoded thumbnails in memory. It is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	items map[storeKey]image.Image
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{items: make(map[storeKey]image.Image)}
}

// Get returns the thumbnail of id at w x h.
func (s *Store) Get(id string, w, h int) (image.Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.items[storeKey{id, w, h}]
	return img, ok
}

// Put stores the thumbnail of id at w x h.
func (s *Store) Put(id string, w, h int, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[storeKey{id, w, h}] = img
}

// Len returns the number of stored thumbnails.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Reset drops every thumbnail. Call it when the gallery folder changes.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.items)
}

// Retain drops every thumbnail that no placement of l uses and returns the
// number dropped.
func (s *Store) Retain(l grid.Layout) int {
	keep := make(map[storeKey]struct{}, len(l.Placements))
	for _, p := range l.Placements {
		keep[storeKey{p.Image.ID, p.Width, p.Height}] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for k := range s.items {
		if _, ok := keep[k]; !ok {
			delete(s.items, k)
			dropped++
		}
	}
	return dropped
}
