package merger

import (
	"strings"
	"sync"

	"github.com/blues/crowdmint/internal/logger"
	"github.com/blues/crowdmint/internal/model"
)

// Board 单个项目的提现请求列表持有者
type Board struct {
	mu       sync.RWMutex
	address  string
	requests []model.WithdrawalRequest
	loaded   bool
}

// NewBoard 创建空列表
func NewBoard(address string) *Board {
	return &Board{address: address}
}

// Address 所属项目地址
func (b *Board) Address() string {
	return b.address
}

// Loaded 是否已从链上加载过
func (b *Board) Loaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loaded
}

// Snapshot 返回当前列表的副本
func (b *Board) Snapshot() []model.WithdrawalRequest {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snapshot := make([]model.WithdrawalRequest, len(b.requests))
	copy(snapshot, b.requests)
	return snapshot
}

// Find 按 requestId 查找
func (b *Board) Find(requestID string) (model.WithdrawalRequest, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if idx := indexOf(b.requests, requestID); idx >= 0 {
		return b.requests[idx], true
	}
	return model.WithdrawalRequest{}, false
}

// Replace 安装重新拉取的列表。
// 本地已确认的完成状态与较大票数会保留，链上之后回退的票数不会反映到本地列表，直到该项目被 Drop。
func (b *Board) Replace(fetched []model.WithdrawalRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.requests = Reconcile(b.requests, fetched)
	b.loaded = true
}

// Merge 基于合并时刻的最新列表应用补丁；目标不存在时记录日志并丢弃补丁
func (b *Board) Merge(patch model.Patch) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := Apply(b.requests, patch)
	if err != nil {
		logger.Warn("Dropping patch for campaign %s: %v", b.address, err)
		return false
	}
	b.requests = next
	return true
}

// Append 追加新请求；重复的 requestId 记录日志后忽略
func (b *Board) Append(req model.WithdrawalRequest) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := Append(b.requests, req)
	if err != nil {
		logger.Warn("Ignoring new request for campaign %s: %v", b.address, err)
		return false
	}
	b.requests = next
	return true
}

// Store 按项目地址管理 Board
type Store struct {
	mu     sync.Mutex
	boards map[string]*Board
}

// NewStore 创建 Store
func NewStore() *Store {
	return &Store{boards: make(map[string]*Board)}
}

// Board 获取项目对应的 Board，不存在时创建
func (s *Store) Board(address string) *Board {
	key := strings.ToLower(address)

	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards[key]
	if !ok {
		board = NewBoard(address)
		s.boards[key] = board
	}
	return board
}

// Len 已持有的项目数
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.boards)
}

// Drop 丢弃项目的本地状态
func (s *Store) Drop(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, strings.ToLower(address))
}
