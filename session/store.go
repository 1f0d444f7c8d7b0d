// Package session 管理用户的持久化会话状态：
// 浏览历史与购物车跨会话留存，登录名到数值身份的映射在首次注册时建立。
// 状态落在 core.Store 上，内存实现用于开发，Redis 实现用于多实例部署。
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/shopsense/core"
)

// CartLine 是购物车中的一行：商品索引加上展示用的名称与成交价快照。
// 价格在加购时刻快照，后续目录调价不影响已有购物车。
type CartLine struct {
	Product int64   `json:"product"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
}

// State 是单个用户的持久化会话状态。
type State struct {
	// History 浏览历史（商品索引，最近浏览在末尾）
	History []int64 `json:"history"`

	// Cart 购物车行
	Cart []CartLine `json:"cart"`
}

// Store 按用户数值身份读写会话状态。
type Store struct {
	backend core.Store
	prefix  string
}

// NewStore 构建会话状态存取器。prefix 为空时用 "session"。
func NewStore(backend core.Store, prefix string) *Store {
	if prefix == "" {
		prefix = "session"
	}
	return &Store{backend: backend, prefix: prefix}
}

func (s *Store) key(userID int64) string {
	return fmt.Sprintf("%s:%d", s.prefix, userID)
}

// Load 读取用户的会话状态；从未写入过时返回零值状态。
func (s *Store) Load(ctx context.Context, userID int64) (*State, error) {
	data, err := s.backend.Get(ctx, s.key(userID))
	if core.IsStoreNotFound(err) {
		return &State{}, nil
	}
	if err != nil {
		return nil, core.NewDomainError(core.ModuleSession, core.ErrorCodeUnavailable,
			"session: load state: "+err.Error())
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, core.NewDomainError(core.ModuleSession, core.ErrorCodeInternalError,
			"session: corrupt state: "+err.Error())
	}
	return &st, nil
}

// Save 写回用户的会话状态。
func (s *Store) Save(ctx context.Context, userID int64, st *State) error {
	if st == nil {
		st = &State{}
	}
	data, err := json.Marshal(st)
	if err != nil {
		return core.NewDomainError(core.ModuleSession, core.ErrorCodeInternalError,
			"session: encode state: "+err.Error())
	}
	if err := s.backend.Set(ctx, s.key(userID), data); err != nil {
		return core.NewDomainError(core.ModuleSession, core.ErrorCodeUnavailable,
			"session: save state: "+err.Error())
	}
	return nil
}

// AppendHistory 向用户浏览历史追加一个商品并写回。
func (s *Store) AppendHistory(ctx context.Context, userID int64, product int64) error {
	st, err := s.Load(ctx, userID)
	if err != nil {
		return err
	}
	st.History = append(st.History, product)
	return s.Save(ctx, userID, st)
}

// AddToCart 向用户购物车加入一行并写回。已在购物车中的商品不重复加入。
func (s *Store) AddToCart(ctx context.Context, userID int64, line CartLine) error {
	st, err := s.Load(ctx, userID)
	if err != nil {
		return err
	}
	for _, l := range st.Cart {
		if l.Product == line.Product {
			return nil
		}
	}
	st.Cart = append(st.Cart, line)
	return s.Save(ctx, userID, st)
}

// ClearCart 清空用户购物车（下单后调用）。
func (s *Store) ClearCart(ctx context.Context, userID int64) error {
	st, err := s.Load(ctx, userID)
	if err != nil {
		return err
	}
	st.Cart = nil
	return s.Save(ctx, userID, st)
}
