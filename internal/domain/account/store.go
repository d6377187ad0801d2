package account

// SessionStore セッションの永続ストアインターフェース
// ブラウザのlocalStorageに相当する耐久ストレージ
type SessionStore interface {
	// Save セッションを保存する
	Save(session *Session) error

	// Load 保存されたセッションを取得する
	// 存在しない場合はErrSessionNotFoundを返す
	Load() (*Session, error)

	// Clear 保存されたセッションを破棄する
	Clear() error
}
