// bloomctl is the one-shot command-line surface for the BloomGarden
// service: inspect today's tasks, complete one, claim the all-done
// bonus, or ask for plant recommendations.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/api"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/config"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/daily"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/phase"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/plant"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/tasksync"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("bloomgarden")
	v.AutomaticEnv()
	v.SetDefault("service_url", config.Default().ServiceURL)

	root := &cobra.Command{
		Use:           "bloomctl",
		Short:         "BloomGarden daily tasks and plant recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("service-url", "", "base URL of the BloomGarden service")
	root.PersistentFlags().String("catalog-url", "", "URL of the plant catalog JSON (embedded sample when empty)")
	_ = v.BindPFlag("service_url", root.PersistentFlags().Lookup("service-url"))
	_ = v.BindPFlag("catalog_url", root.PersistentFlags().Lookup("catalog-url"))

	root.AddCommand(
		newTodayCmd(v),
		newCompleteCmd(v),
		newClaimCmd(v),
		newWalletCmd(v),
		newRecommendCmd(v),
	)
	return root
}

func newSession(v *viper.Viper, cmd *cobra.Command) *tasksync.Engine {
	client := api.NewClient(v.GetString("service_url"))
	client.SessionID = uuid.NewString()

	view := ui.NewTerminal(cmd.OutOrStdout())
	return tasksync.New(client, daily.NewStore(), view)
}

func newTodayCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's task list and wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := newSession(v, cmd)
			engine.RefreshWallet(cmd.Context())
			return engine.FetchToday(cmd.Context())
		},
	}
}

func newCompleteCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := newSession(v, cmd)
			if err := engine.FetchToday(cmd.Context()); err != nil {
				return err
			}
			return engine.ToggleComplete(cmd.Context(), args[0])
		},
	}
}

func newClaimCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "claim",
		Short: "Claim the all-tasks-done bonus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := newSession(v, cmd)
			if err := engine.FetchToday(cmd.Context()); err != nil {
				return err
			}
			if !engine.Snapshot().BonusEnabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Bonus is not claimable yet; finish today's tasks first.")
				return nil
			}
			return engine.ClaimBonus(cmd.Context())
		},
	}
}

func newWalletCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "wallet",
		Short: "Show the wallet balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(v.GetString("service_url"))
			resp, err := client.Wallet(cmd.Context())
			if err != nil {
				return err
			}
			if resp.Username != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ", resp.Username)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🫘 %d beans   🌙 %d moons\n", resp.Beans, resp.Moons)
			return nil
		},
	}
}

func newRecommendCmd(v *viper.Viper) *cobra.Command {
	var dateStr string
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend plants to grow, harvest, and rest for a date's moon phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if dateStr != "" {
				parsed, err := time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("parse --date: %w", err)
				}
				date = parsed
			}

			catalog := plant.NewCatalog(loaderFor(v))
			plants, err := catalog.Plants(cmd.Context())
			if err != nil {
				return err
			}

			label := phase.ForDate(date)
			view := ui.NewTerminal(cmd.OutOrStdout())
			view.RenderBuckets(label, plant.Bucket(plants, label, plant.Filter(typeFilter)))
			return nil
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "date to look up (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&typeFilter, "type", "", "Edible or Ornamental (default both)")
	return cmd
}

func loaderFor(v *viper.Viper) plant.Loader {
	if url := v.GetString("catalog_url"); url != "" {
		return plant.HTTPLoader(http.DefaultClient, url)
	}
	return plant.EmbeddedLoader()
}
