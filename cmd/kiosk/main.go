package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go-gin-cinema-booking/config"
	"go-gin-cinema-booking/internal/client"
	"go-gin-cinema-booking/internal/display"
	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/session"
	"go-gin-cinema-booking/internal/tui"
	"go-gin-cinema-booking/pkg/logger"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const startsAtLayout = "2006-01-02 15:04"

type options struct {
	showingID   int
	movie       string
	cinema      string
	room        string
	startsAt    string
	email       string
	apiURL      string
	strictPairs bool
}

func main() {
	opts := options{}
	cfg := config.LoadConfig()

	rootCmd := &cobra.Command{
		Use:   "kiosk",
		Short: "Cinema booking kiosk",
		Long:  `Pick seats and combos for one showing and book them from the terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("api-url") {
				cfg.Client.BaseURL = strings.TrimRight(opts.apiURL, "/")
			}
			if cmd.Flags().Changed("strict-pairs") {
				cfg.Client.StrictPairs = opts.strictPairs
			}
			return run(cmd.Context(), &cfg.Client, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.IntVar(&opts.showingID, "showing", 0, "showing time id")
	flags.StringVar(&opts.movie, "movie", "", "movie name")
	flags.StringVar(&opts.cinema, "cinema", "", "cinema name")
	flags.StringVar(&opts.room, "room", "", "room name")
	flags.StringVar(&opts.startsAt, "starts-at", "", "showing start time, e.g. \"2026-10-17 19:30\"")
	flags.StringVar(&opts.email, "email", "", "customer email")
	flags.StringVar(&opts.apiURL, "api-url", cfg.Client.BaseURL, "booking API base url")
	flags.BoolVar(&opts.strictPairs, "strict-pairs", cfg.Client.StrictPairs, "never select half of a Sweet Box pair")
	for _, name := range []string{"showing", "movie", "cinema", "email"} {
		_ = rootCmd.MarkFlagRequired(name)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.ClientConfig, opts options) error {
	showing := model.Showing{
		ShowingTimeID: opts.showingID,
		MovieName:     opts.movie,
		CinemaName:    opts.cinema,
		RoomName:      opts.room,
	}
	if opts.startsAt != "" {
		startsAt, err := time.ParseInLocation(startsAtLayout, opts.startsAt, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --starts-at: %w", err)
		}
		showing.StartsAt = startsAt
	}

	// JSON 日誌會破壞終端畫面
	logger.Silence()

	api := client.New(cfg.BaseURL, cfg.Timeout)
	toasts := tui.NewToasts()
	s := session.New(api, toasts, showing, opts.email, session.Options{
		RowLabels:     cfg.RowLabels,
		ColumnsPerRow: cfg.ColumnsPerRow,
		StrictPairs:   cfg.StrictPairs,
	})
	defer s.Close()

	if _, err := tea.NewProgram(tui.New(ctx, s, toasts), tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return err
	}

	ticketID := s.TicketID()
	if ticketID == "" {
		return nil
	}
	printReceipt(ctx, api, s, ticketID)
	return nil
}

// printReceipt 訂位由 worker 非同步寫入，短暫重試後仍查不到就只印票號
func printReceipt(ctx context.Context, api client.BookingAPI, s *session.Session, ticketID string) {
	b, err := api.GetBooking(ctx, ticketID)
	for attempt := 1; err != nil && attempt < 5 && ctx.Err() == nil; attempt++ {
		time.Sleep(500 * time.Millisecond)
		b, err = api.GetBooking(ctx, ticketID)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Ticket " + ticketID)

	if err != nil || b == nil {
		t.AppendRow(table.Row{"Status", "pending"})
		t.Render()
		return
	}

	names := make(map[int]string)
	for _, c := range s.Combos() {
		names[c.ComboID] = c.Name
	}

	t.AppendRows([]table.Row{
		{"Movie", b.MovieName},
		{"Cinema", b.CinemaName},
		{"Showing", b.ShowingTime},
		{"Seats", strings.Join(b.SeatLabels, ", ")},
	})
	for _, c := range b.Combos {
		name, ok := names[c.ComboID]
		if !ok {
			name = fmt.Sprintf("Combo #%d", c.ComboID)
		}
		t.AppendRow(table.Row{name, fmt.Sprintf("x%d", c.Quantity)})
	}
	t.AppendSeparator()
	if b.CouponDiscount > 0 {
		t.AppendRow(table.Row{"Coupon", display.FormatDiscount(b.CouponDiscount)})
	}
	if b.RankDiscount > 0 {
		t.AppendRow(table.Row{"Rank", display.FormatDiscount(b.RankDiscount)})
	}
	if b.LoyaltyPointsUsed > 0 {
		t.AppendRow(table.Row{"Loyalty points", display.FormatDiscount(b.LoyaltyPointsUsed)})
	}
	t.AppendFooter(table.Row{"Total", display.FormatCurrency(b.TotalPrice)})
	t.AppendFooter(table.Row{"Status", string(b.Status)})
	t.Render()
}
