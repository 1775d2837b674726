package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"spendwise/internal/core/events"
	"spendwise/internal/expense"
	"spendwise/internal/storage"
	"spendwise/pkg/logger"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store with sample expenses",
	Long:  `Seed the local store with sample expenses for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.Logging.Format, cfg.Logging.Level)
		lg := logger.LoggerWrapper()

		db, gormDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		blobs := storage.NewBlobStore(gormDB)
		bus := events.NewEventBus(lg)
		store := expense.NewService(bus, lg)
		expense.NewPersister(blobs, store, lg).Register(bus)

		if clearData {
			if err := blobs.Delete(storage.BlobKeyExpenses); err != nil {
				log.Fatalf("failed to clear expenses: %v", err)
			}
			fmt.Println("Cleared existing expenses")
		} else if raw, err := blobs.Get(storage.BlobKeyExpenses); err == nil {
			store.Restore(raw)
		}

		ctx := context.Background()
		today := time.Now().Format("2006-01-02")
		yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
		lastWeek := time.Now().AddDate(0, 0, -6).Format("2006-01-02")

		samples := []expense.CreateExpenseDTO{
			{Amount: 12.50, Category: "Food & Drinks", Description: "Lunch", Date: today},
			{Amount: 3.20, Category: "Transportation", Description: "Bus ticket", Date: today},
			{Amount: 54.99, Category: "Shopping", Description: "Sneakers", Date: yesterday},
			{Amount: 850, Category: "Housing & Rent", Date: lastWeek},
			{Amount: 15, Category: "Entertainment", Description: "Cinema", Date: lastWeek},
		}

		for _, dto := range samples {
			exp, err := store.Add(ctx, dto)
			if err != nil {
				log.Fatalf("failed to seed expense: %v", err)
			}
			fmt.Printf("Seeded expense %s: %s %.2f\n", exp.ID, exp.Category, exp.Amount)
		}

		fmt.Printf("Store now holds %d expenses\n", store.Count())
	},
}
