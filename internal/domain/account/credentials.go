package account

// Credentials ログイン資格情報
type Credentials struct {
	Username string
	Password string
}

// Registration ユーザー登録レコード
// ConfirmPasswordは入力層で非空のみ要求される
// Passwordとの一致検証はバックエンド契約に委ねる
type Registration struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	PhoneNumber     string
}
