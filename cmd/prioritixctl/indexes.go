package main

import (
	"context"
	"fmt"
	"time"

	"prioritix/repository"

	"github.com/spf13/cobra"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the todo collection indexes",
	Args:  cobra.NoArgs,
	RunE:  runIndexes,
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}

func runIndexes(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	client, err := repository.NewMongoClient(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	names, err := repository.SetupIndexes(ctx, repository.TodosCollection(client, cfg.Database))
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
