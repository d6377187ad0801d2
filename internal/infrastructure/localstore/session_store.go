package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"parking-frontend/internal/domain/account"
)

// SessionStore account.SessionStoreのファイル実装
// ブラウザのlocalStorageに相当する単一ユーザー向けの永続ストア
type SessionStore struct {
	path string
	mu   sync.Mutex
}

// NewSessionStore 新しいSessionStoreを作成
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{
		path: path,
	}
}

// sessionRecord 保存されるセッションの形式
// 有効期限はトークンから再導出できるため保存しない
type sessionRecord struct {
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Save セッションを保存する
func (s *SessionStore) Save(session *account.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := sessionRecord{
		Token:    session.Token(),
		UserID:   session.UserID(),
		Username: session.Username(),
		Email:    session.Email(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load 保存されたセッションを取得する
// ファイルが存在しない、または壊れている場合はErrSessionNotFoundを返す
func (s *SessionStore) Load() (*account.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, account.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, account.ErrSessionNotFound
	}
	if record.Token == "" {
		return nil, account.ErrSessionNotFound
	}

	return account.NewSession(record.Token, record.UserID, record.Username, record.Email), nil
}

// Clear 保存されたセッションを破棄する
// 保存されていない場合も成功扱いとする
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
