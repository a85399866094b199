package bookinglist

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
)

// applyFilter возвращает новую выборку из коллекции, не мутируя источник.
// Сортировка: past - по убыванию start (свежие первыми), остальные - по
// возрастанию. Сравнения инстантные, не строковые.
func applyFilter(bookings []*domain.Booking, filter Filter, now time.Time) []*domain.Booking {
	filtered := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		switch filter {
		case FilterUpcoming:
			if b.IsUpcoming(now) {
				filtered = append(filtered, b)
			}
		case FilterPast:
			if b.IsPast(now) {
				filtered = append(filtered, b)
			}
		case FilterCancelled:
			if b.IsCancelled() {
				filtered = append(filtered, b)
			}
		default:
			filtered = append(filtered, b)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filter == FilterPast {
			return filtered[i].StartTime.After(filtered[j].StartTime)
		}
		return filtered[i].StartTime.Before(filtered[j].StartTime)
	})

	return filtered
}

// computeStats считает карточки дашборда по всей коллекции
func computeStats(bookings []*domain.Booking, now time.Time) Stats {
	var stats Stats
	for _, b := range bookings {
		if b.IsUpcoming(now) {
			stats.Upcoming++
		}
		if b.IsConfirmed() {
			stats.TotalConfirmed++
		}
		if b.IsCancelled() {
			stats.Cancelled++
		}
	}
	return stats
}
