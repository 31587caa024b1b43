package session

import "sync"

// Screen is the liveness guard of one booking screen. Async completions are
// applied through Do and are dropped once the screen is closed.
type Screen struct {
	mu    sync.Mutex
	alive bool
}

func NewScreen() *Screen {
	return &Screen{alive: true}
}

// Do 畫面仍存在時才執行 fn，回傳是否執行
func (s *Screen) Do(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive {
		return false
	}
	fn()
	return true
}

// View 唯讀存取，不檢查存活狀態
func (s *Screen) View(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func (s *Screen) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive
}

// Close 離開畫面，之後到達的結果一律丟棄
func (s *Screen) Close() {
	s.mu.Lock()
	s.alive = false
	s.mu.Unlock()
}
