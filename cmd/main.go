// Command firestore-fake is a small demonstration binary: it seeds an
// in-memory store, runs a query and a transaction, and prints the resulting
// tree as YAML.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	firestorefake "firestore-fake"
	"firestore-fake/internal/firestore/config"
	"firestore-fake/internal/shared/logger"
)

func main() {
	root := &cobra.Command{
		Use:           "firestore-fake",
		Short:         "In-process, in-memory document database emulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDemoCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Seed a store, run a query and a transaction, dump the tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "warning: could not load .env file: %v\n", err)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.NewLoggerWithConfig(cfg.LogLevel, cfg.LogFormat)

			ctx := context.Background()
			client := firestorefake.New(
				firestorefake.WithConfig(cfg),
				firestorefake.WithLogger(log),
			)

			users := client.Collection("users")
			for name, score := range map[string]int64{"alice": 12, "bob": 5, "carol": 30} {
				if err := users.Doc(name).Set(ctx, map[string]interface{}{
					"name":      name,
					"score":     score,
					"updatedAt": firestorefake.ServerTimestamp(),
				}); err != nil {
					return err
				}
			}

			snaps, err := users.Where("score", ">", 10).OrderBy("score", firestorefake.Asc).Documents(ctx)
			if err != nil {
				return err
			}
			for _, snap := range snaps {
				log.Infof("query hit: %s %v", snap.ID, snap.Data())
			}

			result, err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestorefake.Transaction) (interface{}, error) {
				alice := users.Doc("alice")
				snap, err := tx.Get(ctx, alice)
				if err != nil {
					return nil, err
				}
				score, err := snap.Get("score")
				if err != nil {
					return nil, err
				}
				if err := tx.Update(ctx, alice, map[string]interface{}{
					"score": firestorefake.Increment(1),
				}); err != nil {
					return nil, err
				}
				return map[string]interface{}{"previousScore": score}, nil
			})
			if err != nil {
				return err
			}
			log.Infof("transaction result: %v", result)

			dump, err := client.DumpYAML(ctx)
			if err != nil {
				return err
			}
			fmt.Println(dump)
			return nil
		},
	}
}
