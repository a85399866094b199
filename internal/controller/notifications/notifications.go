package notifications

import "sync"

// Kind тип уведомления
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notification одно уведомление из выходного потока контроллера.
// Presentation-слой сам решает, как его показать (toast, inline, лог) -
// контроллеры ни к какой библиотеке отображения не привязаны.
type Notification struct {
	Kind    Kind
	Message string
}

// Sink приёмник уведомлений
type Sink interface {
	Notify(n Notification)
}

// SinkFunc адаптер функции к интерфейсу Sink
type SinkFunc func(n Notification)

// Notify вызывает f(n)
func (f SinkFunc) Notify(n Notification) {
	f(n)
}

// Recorder потокобезопасный Sink для тестов: накапливает уведомления
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify сохраняет уведомление
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All возвращает копию всех накопленных уведомлений
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last возвращает последнее уведомление и признак его наличия
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}
