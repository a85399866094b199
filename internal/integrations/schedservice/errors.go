package schedservice

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound возвращается, когда event type или пользователь не найдены (404)
	ErrNotFound = errors.New("schedservice: event type or user not found")

	// ErrUnauthorized возвращается для owner-запросов без валидной сессии (401)
	ErrUnauthorized = errors.New("schedservice: unauthorized")

	// ErrValidationRejected возвращается, когда сервис отклонил мутацию
	// с телом {error: string}
	ErrValidationRejected = errors.New("schedservice: rejected by service")

	// ErrNetwork возвращается при транспортных ошибках (connect, timeout)
	ErrNetwork = errors.New("schedservice: network failure")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("schedservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("schedservice: internal error")
)

// RejectionError несёт дословное сообщение сервиса из тела {error: string}.
// Сообщение должно дойти до пользователя без изменений, поэтому оно
// доступно отдельно от текста ошибки.
type RejectionError struct {
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("schedservice: rejected by service (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap позволяет errors.Is(err, ErrValidationRejected)
func (e *RejectionError) Unwrap() error {
	return ErrValidationRejected
}

// ServerMessage извлекает дословное сообщение сервиса из ошибки.
// Возвращает пустую строку, если сервис сообщения не прислал.
func ServerMessage(err error) string {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Message
	}
	return ""
}
