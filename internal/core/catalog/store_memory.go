// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"sync"

	"github.com/taibuivan/bookhub/internal/platform/apperr"
)

// MemoryRepository is the process-local [Repository]. State is lost on restart.
type MemoryRepository struct {
	mu    sync.RWMutex
	books []*Book
	index map[string]int
}

// NewMemoryRepository creates an empty in-memory catalogue.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{index: make(map[string]int)}
}

// List implements [Repository].
func (repository *MemoryRepository) List(_ context.Context) ([]*Book, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	books := make([]*Book, len(repository.books))
	for i, book := range repository.books {
		books[i] = book.Clone()
	}
	return books, nil
}

// FindByID implements [Repository].
func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Book, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	position, ok := repository.index[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return repository.books[position].Clone(), nil
}

// Create implements [Repository].
func (repository *MemoryRepository) Create(_ context.Context, book *Book) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.index[book.ID]; exists {
		return apperr.Conflict("Book already exists")
	}
	repository.index[book.ID] = len(repository.books)
	repository.books = append(repository.books, book.Clone())
	return nil
}

// AddListing implements [Repository].
func (repository *MemoryRepository) AddListing(_ context.Context, bookID string, listing Listing) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	position, ok := repository.index[bookID]
	if !ok {
		return apperr.NotFound("Book")
	}
	book := repository.books[position]
	book.Prices = append(book.Prices, listing)
	return nil
}
