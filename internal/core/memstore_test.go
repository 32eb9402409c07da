package core

import (
	"context"
	"sort"
	"sync"
)

// memStore is an in-memory Store implementation for tests. It mirrors the
// production store's contract: name uniqueness surfaces as *ConflictError,
// injected faults simulate connection loss or audit-write failures.
type memStore struct {
	mu            sync.Mutex
	products      map[int64]Product
	history       []HistoryRecord
	nextProductID int64
	nextHistoryID int64

	// Fault injection
	appendHistoryErr error
	getByNameErr     error
	insertErr        error
	listErr          error
}

func newMemStore() *memStore {
	return &memStore{products: make(map[int64]Product)}
}

func (m *memStore) GetProduct(ctx context.Context, id int64) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *memStore) GetProductByName(ctx context.Context, name string) (*Product, error) {
	if m.getByNameErr != nil {
		return nil, m.getByNameErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Name == name {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertProduct(ctx context.Context, p *Product) (int64, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.products {
		if existing.Name == p.Name {
			return 0, &ConflictError{Name: p.Name}
		}
	}
	m.nextProductID++
	stored := *p
	stored.ID = m.nextProductID
	m.products[stored.ID] = stored
	return stored.ID, nil
}

func (m *memStore) UpdateProduct(ctx context.Context, id int64, fields UpdateProductInput) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return 0, nil
	}
	p.Name = fields.Name
	p.Category = fields.Category
	p.Brand = fields.Brand
	p.Price = fields.Price
	p.Stock = fields.Stock
	m.products[id] = p
	return 1, nil
}

func (m *memStore) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return 0, nil
	}
	delete(m.products, id)
	return 1, nil
}

func (m *memStore) ListProducts(ctx context.Context) ([]Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	products := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (m *memStore) AppendHistory(ctx context.Context, rec *HistoryRecord) (int64, error) {
	if m.appendHistoryErr != nil {
		return 0, m.appendHistoryErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextHistoryID++
	stored := *rec
	stored.ID = m.nextHistoryID
	m.history = append(m.history, stored)
	return stored.ID, nil
}

func (m *memStore) ListHistory(ctx context.Context, productID int64) ([]HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var records []HistoryRecord
	for _, rec := range m.history {
		if rec.ProductID == productID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].ChangeDate.Equal(records[j].ChangeDate) {
			return records[i].ChangeDate.After(records[j].ChangeDate)
		}
		return records[i].ID > records[j].ID
	})
	return records, nil
}

func (m *memStore) productCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.products)
}
