package domain

// User пользователь сервиса
type User struct {
	ID    int64
	Name  string
	Email string
}
