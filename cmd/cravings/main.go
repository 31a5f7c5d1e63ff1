package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"cravings-client/internal/api"
	"cravings-client/internal/cart"
	"cravings-client/internal/catalog"
	"cravings-client/internal/config"
	"cravings-client/internal/logger"
	"cravings-client/internal/order"
	"cravings-client/internal/session"
)

func main() {
	restaurantID := flag.Int("restaurant", 0, "restaurant id to browse")
	term := flag.String("search", "", "menu search term")
	category := flag.String("category", "all", "menu category filter")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	store := session.NewStore(cfg.TokenStorePath)
	sess := session.New(cfg, store)

	ctx := logger.WithOpID(context.Background())
	if err := sess.Resume(); err != nil {
		username := os.Getenv("CRAVINGS_USERNAME")
		password := os.Getenv("CRAVINGS_PASSWORD")
		if _, err := sess.Login(ctx, username, password); err != nil {
			log.Fatalf("login failed: %v", err)
		}
	}

	client, err := api.NewClient(cfg, sess)
	if err != nil {
		log.Fatalf("building API client: %v", err)
	}

	catalogSvc := catalog.NewService(catalog.NewRepository(client))
	cartMgr := cart.NewManager(cart.NewRepository(client))
	orderCtrl := order.NewController(
		order.NewRepository(client),
		order.IdentityFunc(func() string {
			if u := sess.CurrentUser(); u != nil {
				return u.Username
			}
			return ""
		}),
		order.WithCapacity(cfg.CrewCapacity),
	)

	restaurants, err := catalogSvc.Restaurants(ctx)
	if err != nil {
		log.Fatalf("listing restaurants: %v", err)
	}
	for _, r := range restaurants {
		fmt.Printf("#%d %s (%s-%s)\n", r.ID, r.Name, r.OpeningTime, r.ClosingTime)
	}

	if *restaurantID != 0 {
		groups, err := catalogSvc.MenuByCategory(ctx, *restaurantID, *term, catalog.Category(*category))
		if err != nil {
			log.Fatalf("fetching menu: %v", err)
		}
		for _, group := range groups {
			fmt.Printf("\n%s\n", group.Category)
			for _, item := range group.Items {
				fmt.Printf("  %s  %s\n", item.Name, item.Price.StringFixed(2))
			}
		}
	}

	if current, err := cartMgr.Refresh(ctx); err == nil {
		fmt.Printf("\ncart: %d items, total %s\n", len(current.Items), current.Total.StringFixed(2))
	}

	if orders, err := orderCtrl.Refresh(ctx); err == nil {
		for _, o := range orders {
			fmt.Printf("order #%d %s %s\n", o.ID, o.Status, o.Total.StringFixed(2))
		}
	}
}
