package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/api"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/config"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/daily"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/phase"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/plant"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/tasksync"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/ui"
)

func main() {
	cfgPath := flag.String("config", "", "path to a yaml config file")
	flag.Parse()

	logger := log.New(os.Stderr, "bloomgarden ", log.LstdFlags)

	var cfg config.Config
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			logger.Fatal(err)
		}
		cfg = *loaded
	} else {
		cfg = config.FromEnv()
	}

	client := api.NewClient(cfg.ServiceURL)
	client.SessionID = uuid.NewString()

	store := daily.NewStore()
	view := ui.NewTerminal(os.Stdout)
	engine := tasksync.New(client, store, view,
		tasksync.WithLogger(logger),
		tasksync.WithLoginRedirect(cfg.LoginPath, cfg.TasksPath),
	)

	catalog := plant.NewCatalog(catalogLoader(cfg))

	ctx := context.Background()
	engine.RefreshWallet(ctx)
	if err := engine.FetchToday(ctx); err != nil && errors.Is(err, api.ErrAuthRequired) {
		os.Exit(1)
	}

	runSession(ctx, engine, catalog, view)
}

func catalogLoader(cfg config.Config) plant.Loader {
	if cfg.CatalogURL == "" {
		return plant.EmbeddedLoader()
	}
	return plant.HTTPLoader(http.DefaultClient, cfg.CatalogURL)
}

func runSession(ctx context.Context, engine *tasksync.Engine, catalog *plant.Catalog, view *ui.Terminal) {
	fmt.Println("commands: done <task-id> | claim | refresh | plants [Edible|Ornamental] | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "done":
			if len(fields) < 2 {
				fmt.Println("usage: done <task-id>")
				continue
			}
			if err := engine.ToggleComplete(ctx, fields[1]); err != nil && errors.Is(err, tasksync.ErrTaskUnknown) {
				fmt.Printf("no task %q in today's list\n", fields[1])
			}
		case "claim":
			_ = engine.ClaimBonus(ctx)
		case "refresh":
			engine.RefreshWallet(ctx)
			_ = engine.FetchToday(ctx)
		case "plants":
			filter := plant.FilterAll
			if len(fields) > 1 {
				filter = plant.Filter(fields[1])
			}
			plants, err := catalog.Plants(ctx)
			if err != nil {
				fmt.Println("Could not load plant suggestions.")
				continue
			}
			label := phase.ForDate(time.Now())
			view.RenderBuckets(label, plant.Bucket(plants, label, filter))
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q\n", fields[0])
		}

		if engine.State() == tasksync.StateUnauthenticated {
			return
		}
	}
}
