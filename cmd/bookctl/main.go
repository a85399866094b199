package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/m04kA/SMC-SchedulingClient/internal/controller/bookinglist"
	"github.com/m04kA/SMC-SchedulingClient/internal/controller/notifications"
	"github.com/m04kA/SMC-SchedulingClient/internal/controller/wizard"
	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
	"github.com/m04kA/SMC-SchedulingClient/internal/integrations/schedservice"
	"github.com/m04kA/SMC-SchedulingClient/internal/session"
	"github.com/m04kA/SMC-SchedulingClient/pkg/logger"
)

// bookctl консольный клиент scheduling service: гостевое бронирование через
// wizard и owner-операции со списком. Удобен против запущенного schedmock.
func main() {
	// .env необязателен: переменные могут прийти из окружения
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "bookctl",
		Usage: "Book meetings and manage bookings against a scheduling service.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Value:   "http://localhost:8080",
				Usage:   "Scheduling service base URL.",
				EnvVars: []string{"SCHED_BASE_URL"},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "Owner bearer token for /bookings operations.",
				EnvVars: []string{"SCHED_TOKEN"},
			},
		},
		Commands: []*cli.Command{
			profileCommand(),
			bookCommand(),
			bookingsCommand(),
			cancelCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func profileCommand() *cli.Command {
	return &cli.Command{
		Name:      "profile",
		Usage:     "Show a host's public booking page: name and event types.",
		ArgsUsage: "<username>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one argument: username")
			}

			log, err := setupLogger()
			if err != nil {
				return err
			}
			defer log.Close()

			client := schedservice.NewAvailabilityClient(c.String("base-url"), 10*time.Second, log, nil)
			profile, err := client.GetPublicProfile(c.Context, c.Args().First())
			if err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}

			fmt.Printf("%s (@%s)\n", profile.FullName, profile.Username)
			for _, et := range profile.EventTypes {
				fmt.Printf("  %-20s %3d min  %s\n", et.Slug, et.DurationMinutes, et.Name)
			}
			return nil
		},
	}
}

func bookCommand() *cli.Command {
	return &cli.Command{
		Name:      "book",
		Usage:     "Walk the booking wizard: pick a date, a slot and confirm.",
		ArgsUsage: "<username> <slug>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Required: true, Usage: "Date to book, YYYY-MM-DD."},
			&cli.IntFlag{Name: "slot", Value: 0, Usage: "Index of the slot to book (see listed slots)."},
			&cli.StringFlag{Name: "name", Required: true, Usage: "Guest full name."},
			&cli.StringFlag{Name: "email", Required: true, Usage: "Guest email."},
			&cli.StringFlag{Name: "phone", Usage: "Guest phone (optional)."},
			&cli.StringFlag{Name: "notes", Usage: "Notes for the host (optional)."},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("expected exactly two arguments: username slug")
			}
			username, slug := c.Args().Get(0), c.Args().Get(1)

			date, err := time.Parse(domain.DateFormat, c.String("date"))
			if err != nil {
				return fmt.Errorf("invalid --date, expected YYYY-MM-DD: %w", err)
			}

			log, err := setupLogger()
			if err != nil {
				return err
			}
			defer log.Close()

			baseURL := c.String("base-url")
			availabilityClient := schedservice.NewAvailabilityClient(baseURL, 10*time.Second, log, nil)
			bookingClient := schedservice.NewBookingClient(baseURL, 10*time.Second, session.Anonymous(), log, nil)

			w := wizard.NewController(username, slug, availabilityClient, bookingClient, printNotifier(), log)

			if err := w.SelectDate(c.Context, date); err != nil {
				return fmt.Errorf("date selection failed: %w", err)
			}

			snap := w.Snapshot()
			fmt.Printf("Available slots for %s:\n", c.String("date"))
			for i, slot := range snap.Availability.Slots {
				fmt.Printf("  [%d] %s - %s\n", i,
					slot.Start.Format("15:04"), slot.End.Format("15:04"))
			}

			idx := c.Int("slot")
			if idx < 0 || idx >= len(snap.Availability.Slots) {
				return fmt.Errorf("--slot %d out of range, %d slots available", idx, len(snap.Availability.Slots))
			}
			if err := w.SelectSlot(snap.Availability.Slots[idx]); err != nil {
				return fmt.Errorf("slot selection failed: %w", err)
			}

			err = w.SubmitDetails(c.Context, wizard.Draft{
				GuestName:  c.String("name"),
				GuestEmail: c.String("email"),
				GuestPhone: c.String("phone"),
				Notes:      c.String("notes"),
			})
			if err != nil {
				return fmt.Errorf("booking failed: %w", err)
			}

			confirmation := w.Snapshot().Confirmation
			fmt.Printf("Booked %s on %s (id=%s)\n",
				confirmation.EventTypeName,
				confirmation.StartTime.Format(time.RFC3339),
				confirmation.BookingID)
			return nil
		},
	}
}

func bookingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "bookings",
		Usage: "List the owner's bookings.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "filter", Value: "upcoming", Usage: "One of: upcoming, past, cancelled, all."},
		},
		Action: func(c *cli.Context) error {
			log, err := setupLogger()
			if err != nil {
				return err
			}
			defer log.Close()

			ctrl, err := ownerController(c, log)
			if err != nil {
				return err
			}
			if err := ctrl.Load(c.Context); err != nil {
				return fmt.Errorf("failed to load bookings: %w", err)
			}

			ctrl.SetFilter(bookinglist.Filter(c.String("filter")))
			snap := ctrl.Snapshot()

			stats := ctrl.Stats()
			fmt.Printf("Upcoming: %d  Confirmed: %d  Cancelled: %d\n\n",
				stats.Upcoming, stats.TotalConfirmed, stats.Cancelled)

			if snap.EmptyMessage != "" {
				fmt.Println(snap.EmptyMessage)
				return nil
			}
			for _, view := range snap.Bookings {
				b := view.Booking
				fmt.Printf("%s  %-10s %s  %s (%s)\n",
					b.ID, b.Status, b.StartTime.Format("2006-01-02 15:04"), b.EventTypeName, b.GuestName)
			}
			return nil
		},
	}
}

func cancelCommand() *cli.Command {
	return &cli.Command{
		Name:      "cancel",
		Usage:     "Cancel an upcoming booking by id.",
		ArgsUsage: "<booking-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one argument: booking-id")
			}
			id := c.Args().First()

			log, err := setupLogger()
			if err != nil {
				return err
			}
			defer log.Close()

			ctrl, err := ownerController(c, log)
			if err != nil {
				return err
			}
			if err := ctrl.Load(c.Context); err != nil {
				return fmt.Errorf("failed to load bookings: %w", err)
			}

			if err := ctrl.RequestCancel(id); err != nil {
				return fmt.Errorf("cannot cancel: %w", err)
			}
			if err := ctrl.ConfirmCancel(c.Context, id); err != nil {
				return fmt.Errorf("cancellation failed: %w", err)
			}
			return nil
		},
	}
}

func ownerController(c *cli.Context, log *logger.Logger) (*bookinglist.Controller, error) {
	token := c.String("token")
	if token == "" {
		return nil, fmt.Errorf("owner token is required: set --token or SCHED_TOKEN")
	}

	sess := session.New(token, nil)
	client := schedservice.NewBookingClient(c.String("base-url"), 10*time.Second, sess, log, nil)
	return bookinglist.NewController(client, printNotifier(), log), nil
}

// printNotifier печатает выходной поток уведомлений контроллеров на stdout
func printNotifier() notifications.Sink {
	return notifications.SinkFunc(func(n notifications.Notification) {
		fmt.Printf("[%s] %s\n", n.Kind, n.Message)
	})
}

func setupLogger() (*logger.Logger, error) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	log, err := logger.New("", level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}
