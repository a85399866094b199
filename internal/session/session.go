package session

import "errors"

// ErrNoSession возвращается, когда операция требует авторизованную сессию
var ErrNoSession = errors.New("session: not authenticated")

// User владелец календаря (авторизованный пользователь)
type User struct {
	ID              string
	Email           string
	FullName        string
	Username        string
	ProfileImageURL *string
}

// Session явный контекст сессии, передаваемый контроллерам и клиентам при
// создании. Заменяет глобальное мутабельное состояние: жизненный цикл
// (init/teardown) принадлежит хостовому приложению.
type Session struct {
	token string
	user  *User
}

// New создает авторизованную сессию владельца
func New(token string, user *User) *Session {
	return &Session{token: token, user: user}
}

// Anonymous создает пустую сессию для гостевого потока (wizard)
func Anonymous() *Session {
	return &Session{}
}

// Token возвращает bearer-токен сессии (пустая строка для гостя)
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

// User возвращает владельца сессии (nil для гостя)
func (s *Session) User() *User {
	if s == nil {
		return nil
	}
	return s.user
}

// IsAuthenticated возвращает true, если сессия содержит токен
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.token != ""
}

// Clear очищает сессию (teardown). Идемпотентно.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.token = ""
	s.user = nil
}
