package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/giftnest/giftnest-backend/internal/cartsession"
	"github.com/giftnest/giftnest-backend/pkg/cartapi"
	"github.com/giftnest/giftnest-backend/pkg/config"
	"github.com/giftnest/giftnest-backend/pkg/logger"
	"github.com/giftnest/giftnest-backend/pkg/metrics"
)

// cart-sync is a development REPL for exercising the cart session client
// against a running API: it loads the remote cart, applies local mutations,
// and lets the flusher batch them back out.
func main() {
	logg := logger.New(logger.Options{ServiceName: "cart-sync"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cart-sync",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	userID, err := uuid.Parse(os.Getenv("GIFTNEST_CART_SYNC_USER_ID"))
	if err != nil {
		logg.Error(context.Background(), "GIFTNEST_CART_SYNC_USER_ID must be a uuid", err)
		os.Exit(1)
	}

	remote, err := cartapi.NewClient(cartapi.ClientParams{
		Config:      cfg.CartAPI,
		BearerToken: os.Getenv("GIFTNEST_CART_SYNC_TOKEN"),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart api client", err)
		os.Exit(1)
	}

	tracker := cartsession.NewTracker()
	store, err := cartsession.NewStore(cartsession.StoreParams{
		Session: cartsession.Session{UserID: userID},
		Tracker: tracker,
		Remote:  remote,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	flusher, err := cartsession.NewFlusher(cartsession.FlusherParams{
		Session: cartsession.Session{UserID: userID},
		Tracker: tracker,
		Remote:  remote,
		Logger:  logg,
		Metrics: metrics.NewFlushMetrics(prometheus.DefaultRegisterer),
		Config:  cfg.CartSync,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create flusher", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := store.Load(ctx); err != nil {
		logg.Error(ctx, "failed to load remote cart", err)
		os.Exit(1)
	}

	flusher.Start(ctx)
	go func() {
		for result := range flusher.Results() {
			if result.Err != nil {
				logg.Error(ctx, fmt.Sprintf("flush %s: %d/%d applied", result.Trigger, result.Applied, result.Pending), result.Err)
				continue
			}
			logg.Info(logg.WithFields(ctx, map[string]any{
				"trigger": string(result.Trigger),
				"applied": result.Applied,
			}), "flush complete")
		}
	}()

	fmt.Println("commands: ls | inc N | dec N | fav N | del N | subtotal | quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "ls":
			printItems(store.Items())
		case "inc", "dec", "fav", "del":
			item, ok := itemAt(store.Items(), fields)
			if !ok {
				fmt.Println("usage: inc|dec|fav|del <index>")
				continue
			}
			switch fields[0] {
			case "inc":
				store.Increment(item.ProductID)
			case "dec":
				store.Decrement(item.ProductID)
			case "fav":
				store.ToggleFavourite(ctx, item.ProductID)
			case "del":
				store.Delete(ctx, item.ProductID)
			}
			printItems(store.Items())
		case "subtotal":
			fmt.Printf("subtotal: %d cents\n", store.SubtotalCents())
		case "quit", "exit":
			flusher.Stop()
			return
		default:
			fmt.Println("unknown command")
		}
	}
	flusher.Stop()
}

func itemAt(items []cartsession.LineItem, fields []string) (cartsession.LineItem, bool) {
	if len(fields) < 2 {
		return cartsession.LineItem{}, false
	}
	idx, err := strconv.Atoi(fields[1])
	if err != nil || idx < 0 || idx >= len(items) {
		return cartsession.LineItem{}, false
	}
	return items[idx], true
}

func printItems(items []cartsession.LineItem) {
	if len(items) == 0 {
		fmt.Println("(cart is empty)")
		return
	}
	for i, item := range items {
		fav := " "
		if item.IsFavourite {
			fav = "*"
		}
		fmt.Printf("%2d %s x%d %s %d cents\n", i, fav, item.Quantity, item.Name, item.UnitPriceCents)
	}
}
