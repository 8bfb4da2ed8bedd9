package client

import (
	"context"
	"fmt"
	"sync"

	"inventory-hub/internal/model"
)

// Backend 由 *Client 實作
type Backend interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, p model.Product) (int, error)
	AdjustQuantity(ctx context.Context, name string, change model.ChangeType, amount int) (int, error)
	DeleteProduct(ctx context.Context, name string) error
	ListUsers(ctx context.Context) ([]model.UserSummary, error)
	CreateUser(ctx context.Context, username, password string) (int, error)
	UpdateUser(ctx context.Context, id int, username, password string) error
	DeleteUser(ctx context.Context, id int) error
}

// State 保存伺服器集合的副本。每次變更成功後重新抓取整個受影響的集合，
// 不做樂觀更新也不做本地合併
type State struct {
	backend Backend

	mu       sync.RWMutex
	products []model.Product
	users    []model.UserSummary
}

func NewState(b Backend) *State {
	return &State{backend: b}
}

func (s *State) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Product(nil), s.products...)
}

func (s *State) Users() []model.UserSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.UserSummary(nil), s.users...)
}

// Refresh 重新載入商品與使用者
func (s *State) Refresh(ctx context.Context) error {
	if err := s.refetchProducts(ctx); err != nil {
		return err
	}
	return s.refetchUsers(ctx)
}

func (s *State) refetchProducts(ctx context.Context) error {
	products, err := s.backend.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("refetch products: %w", err)
	}
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return nil
}

func (s *State) refetchUsers(ctx context.Context) error {
	users, err := s.backend.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("refetch users: %w", err)
	}
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return nil
}

func (s *State) AddProduct(ctx context.Context, p model.Product) error {
	if _, err := s.backend.CreateProduct(ctx, p); err != nil {
		return err
	}
	return s.refetchProducts(ctx)
}

func (s *State) AdjustQuantity(ctx context.Context, name string, change model.ChangeType, amount int) error {
	if _, err := s.backend.AdjustQuantity(ctx, name, change, amount); err != nil {
		return err
	}
	return s.refetchProducts(ctx)
}

func (s *State) DeleteProduct(ctx context.Context, name string) error {
	if err := s.backend.DeleteProduct(ctx, name); err != nil {
		return err
	}
	return s.refetchProducts(ctx)
}

func (s *State) AddUser(ctx context.Context, username, password string) error {
	if _, err := s.backend.CreateUser(ctx, username, password); err != nil {
		return err
	}
	return s.refetchUsers(ctx)
}

func (s *State) UpdateUser(ctx context.Context, id int, username, password string) error {
	if err := s.backend.UpdateUser(ctx, id, username, password); err != nil {
		return err
	}
	return s.refetchUsers(ctx)
}

func (s *State) DeleteUser(ctx context.Context, id int) error {
	if err := s.backend.DeleteUser(ctx, id); err != nil {
		return err
	}
	return s.refetchUsers(ctx)
}
