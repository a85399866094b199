package wizard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
)

// Клиентская валидация - оптимизация, а не граница доверия: сервис остаётся
// авторитетом, и его отказ всё равно показывается дословно.

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateDraft проверяет данные гостя до любого сетевого вызова
func validateDraft(draft Draft) error {
	name := strings.TrimSpace(draft.GuestName)
	if name == "" {
		return fmt.Errorf("%w: guest name is required", ErrInvalidDraft)
	}
	if len(name) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guest name is too long", ErrInvalidDraft)
	}

	email := strings.TrimSpace(draft.GuestEmail)
	if email == "" {
		return fmt.Errorf("%w: guest email is required", ErrInvalidDraft)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: guest email is not valid", ErrInvalidDraft)
	}

	if len(draft.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidDraft, domain.MaxNotesLength)
	}

	return nil
}
