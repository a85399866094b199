package schedmock

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
)

// DefaultToken bearer-токен, который stub принимает для /bookings.
// Один владелец, одна сессия: этого достаточно для разработки и тестов.
const DefaultToken = "dev-token"

var errNotFound = errors.New("schedmock: not found")

// Service HTTP-фасад stub-сервиса планирования. Реализует тот же контракт,
// что и боевой scheduling service: публичные ручки доступности и
// бронирования плюс защищённые ручки владельца.
type Service struct {
	store *Store
	token string
	log   Logger

	latency   time.Duration
	errorRate float64
}

// NewService создает stub-сервис поверх хранилища.
// latencyMs и errorRate включают инъекцию задержек и ошибок.
func NewService(store *Store, log Logger, latencyMs int, errorRate float64) *Service {
	return &Service{
		store:     store,
		token:     DefaultToken,
		log:       log,
		latency:   time.Duration(latencyMs) * time.Millisecond,
		errorRate: errorRate,
	}
}

// Router собирает маршрутизатор со всеми ручками контракта
func (s *Service) Router(m Metrics) *mux.Router {
	router := mux.NewRouter()

	if m != nil {
		router.Use(metricsMiddleware(m))
	}
	router.Use(s.faultMiddleware())

	router.HandleFunc("/public/{username}", s.handleGetProfile).Methods(http.MethodGet)
	router.HandleFunc("/public/{username}/{slug}/availability", s.handleGetAvailability).Methods(http.MethodGet)
	router.HandleFunc("/public/{username}/{slug}/book", s.handleCreateBooking).Methods(http.MethodPost)

	protected := router.PathPrefix("/bookings").Subrouter()
	protected.Use(s.authMiddleware())
	protected.HandleFunc("", s.handleListBookings).Methods(http.MethodGet)
	protected.HandleFunc("/{id}", s.handleCancelBooking).Methods(http.MethodDelete)

	return router
}

// Handler собирает корневой обработчик: контрактный роутер плюс prometheus
// endpoint на metricsPath. Endpoint монтируется рядом с роутером, а не внутри
// него: инъекция задержек и ошибок не должна ломать сбор метрик.
// Пустой metricsPath отключает endpoint.
func (s *Service) Handler(m Metrics, metricsPath string) http.Handler {
	router := s.Router(m)
	if metricsPath == "" {
		return router
	}

	root := http.NewServeMux()
	root.Handle(metricsPath, promhttp.Handler())
	root.Handle("/", router)
	return root
}

// handleGetProfile обрабатывает GET /public/{username}
func (s *Service) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	host, ok := s.store.Profile(username)
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	eventTypes := make([]publicEventTypeResponse, 0, len(host.EventTypes))
	for _, et := range host.EventTypes {
		if !et.IsActive {
			continue
		}
		eventTypes = append(eventTypes, publicEventTypeResponse{
			Name:            et.Name,
			Slug:            et.Slug,
			DurationMinutes: et.DurationMinutes,
			Description:     et.Description,
			Location:        et.Location,
			Color:           et.Color,
		})
	}

	respondJSON(w, http.StatusOK, publicProfileResponse{
		Username:   host.Username,
		FullName:   host.FullName,
		EventTypes: eventTypes,
	})
}

// handleGetAvailability обрабатывает GET /public/{username}/{slug}/availability?date=YYYY-MM-DD
func (s *Service) handleGetAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username, slug := vars["username"], vars["slug"]

	// 1. Валидация даты
	dateStr := r.URL.Query().Get("date")
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	// 2. Поиск event type
	et, ok := s.store.EventType(username, slug)
	if !ok {
		respondError(w, http.StatusNotFound, "Event type not found")
		return
	}

	// 3. Генерация слотов
	slots := s.store.SlotsFor(et, date)
	slotDTOs := make([]availableSlotResponse, 0, len(slots))
	for _, slot := range slots {
		slotDTOs = append(slotDTOs, availableSlotResponse{
			Start: slot.Start.Format(time.RFC3339),
			End:   slot.End.Format(time.RFC3339),
		})
	}

	s.log.Debug("availability: username=%s slug=%s date=%s slots=%d", username, slug, dateStr, len(slotDTOs))

	respondJSON(w, http.StatusOK, dayAvailabilityResponse{
		Date:           dateStr,
		AvailableSlots: slotDTOs,
		EventType: eventTypeInfoResponse{
			Name:            et.Name,
			Slug:            et.Slug,
			DurationMinutes: et.DurationMinutes,
			Location:        et.Location,
			Description:     et.Description,
		},
	})
}

// handleCreateBooking обрабатывает POST /public/{username}/{slug}/book
func (s *Service) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username, slug := vars["username"], vars["slug"]

	// 1. Разбор тела запроса
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// 2. Валидация
	if strings.TrimSpace(req.GuestName) == "" {
		respondError(w, http.StatusBadRequest, "Guest name is required")
		return
	}
	if strings.TrimSpace(req.GuestEmail) == "" {
		respondError(w, http.StatusBadRequest, "Guest email is required")
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid startTime, expected RFC 3339 timestamp")
		return
	}

	// 3. Создание бронирования
	booking, err := s.store.CreateBooking(username, slug, req.GuestName, req.GuestEmail, req.GuestPhone, req.Notes, start)
	if err != nil {
		if _, ok := s.store.EventType(username, slug); !ok {
			respondError(w, http.StatusNotFound, "Event type not found")
			return
		}
		respondError(w, http.StatusConflict, err.Error())
		return
	}

	s.log.Info("booking created: id=%s slug=%s start=%s", booking.ID, slug, booking.StartTime.Format(time.RFC3339))

	respondJSON(w, http.StatusCreated, bookingConfirmationResponse{
		BookingID:       booking.ID,
		GuestName:       booking.GuestName,
		GuestEmail:      booking.GuestEmail,
		StartTime:       booking.StartTime.Format(time.RFC3339),
		EndTime:         booking.EndTime.Format(time.RFC3339),
		EventTypeName:   booking.EventTypeName,
		Location:        booking.Location,
		DurationMinutes: booking.DurationMinutes,
		Status:          string(booking.Status),
		Message:         "Booking confirmed successfully",
	})
}

// handleListBookings обрабатывает GET /bookings
func (s *Service) handleListBookings(w http.ResponseWriter, r *http.Request) {
	bookings := s.store.ListBookings()

	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}

	respondJSON(w, http.StatusOK, out)
}

// handleCancelBooking обрабатывает DELETE /bookings/{id}
func (s *Service) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.store.CancelBooking(id); err != nil {
		if errors.Is(err, errNotFound) {
			respondError(w, http.StatusNotFound, "Booking not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.Info("booking cancelled: id=%s", id)
	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		EventTypeName:   b.EventTypeName,
		EventTypeSlug:   b.EventTypeSlug,
		StartTime:       b.StartTime.Format(time.RFC3339),
		EndTime:         b.EndTime.Format(time.RFC3339),
		DurationMinutes: b.DurationMinutes,
		GuestName:       b.GuestName,
		GuestEmail:      b.GuestEmail,
		GuestPhone:      b.GuestPhone,
		Notes:           b.Notes,
		Location:        b.Location,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}
