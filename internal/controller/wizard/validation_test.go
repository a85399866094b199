package wizard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
)

func TestValidateDraft(t *testing.T) {
	valid := Draft{GuestName: "Jamie Guest", GuestEmail: "jamie@example.com"}

	cases := []struct {
		name    string
		mutate  func(d *Draft)
		wantErr bool
	}{
		{"valid minimal", func(d *Draft) {}, false},
		{"valid with optionals", func(d *Draft) {
			d.GuestPhone = "+1 555 0100"
			d.Notes = "See you soon"
		}, false},
		{"name at limit", func(d *Draft) {
			d.GuestName = strings.Repeat("a", domain.MaxGuestNameLength)
		}, false},
		{"name over limit", func(d *Draft) {
			d.GuestName = strings.Repeat("a", domain.MaxGuestNameLength+1)
		}, true},
		{"whitespace name", func(d *Draft) { d.GuestName = "   " }, true},
		{"email without at", func(d *Draft) { d.GuestEmail = "jamie.example.com" }, true},
		{"email without domain dot", func(d *Draft) { d.GuestEmail = "jamie@example" }, true},
		{"email with spaces", func(d *Draft) { d.GuestEmail = "ja mie@example.com" }, true},
		{"notes at limit", func(d *Draft) {
			d.Notes = strings.Repeat("n", domain.MaxNotesLength)
		}, false},
		{"notes over limit", func(d *Draft) {
			d.Notes = strings.Repeat("n", domain.MaxNotesLength+1)
		}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := valid
			tc.mutate(&draft)

			err := validateDraft(draft)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDraft)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
