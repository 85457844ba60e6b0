package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typetycoon/internal/config"
	"github.com/verte-zerg/typetycoon/internal/model"
	"github.com/verte-zerg/typetycoon/internal/session"
	"github.com/verte-zerg/typetycoon/internal/stats"
	"github.com/verte-zerg/typetycoon/internal/store"
	"github.com/verte-zerg/typetycoon/internal/upgrade"
)

var (
	historyMode  string
	historySince string
	historyLast  int
)

func newUpgradesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrades",
		Short: "List the upgrade catalog",
		Args:  cobra.NoArgs,
		RunE:  runUpgradesCmd,
	}
}

func runUpgradesCmd(cmd *cobra.Command, _ []string) error {
	catalog, err := loadCatalog(gameCatalog)
	if err != nil {
		return err
	}
	for _, line := range upgradeLines(catalog) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func upgradeLines(catalog *upgrade.Catalog) []string {
	headers := []string{"ID", "Upgrade", "Cost", "Effect", "Requires"}
	rows := make([][]string, 0, catalog.Len())
	for _, u := range catalog.Upgrades() {
		requires := strings.Join(catalog.PrerequisiteNames(u), ", ")
		if requires == "" {
			requires = "-"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", u.ID),
			u.Name,
			fmt.Sprintf("%d", u.Cost),
			describeEffect(u.Effect),
			requires,
		})
	}
	return stats.FormatTable(headers, rows, map[int]bool{0: true, 2: true})
}

func describeEffect(e upgrade.Effect) string {
	switch e.Kind {
	case upgrade.VowelMultiplier:
		return fmt.Sprintf("vowels x%g", e.Value)
	case upgrade.ConsonantMultiplier:
		return fmt.Sprintf("consonants x%g", e.Value)
	case upgrade.BaseScore:
		return fmt.Sprintf("base score %g", e.Value)
	case upgrade.ComboUnlock, upgrade.ComboThreshold:
		return fmt.Sprintf("combo x%g at %g WPM", e.TierMultiplier, e.Value)
	case upgrade.ComboNoBreak:
		return "mistakes keep the combo"
	}
	return e.Kind.String()
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show finished runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyMode, "mode", "", "mode filter (target, exhaust)")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := historyConfig(historyMode, historySince, historyLast)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(gameCatalog)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("failed to close db")
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	return stats.RenderHistory(cmd.OutOrStdout(), report, catalog, stats.TerminalWidth(os.Stdout))
}

func historyConfig(mode, since string, last int) (model.HistoryConfig, error) {
	cfg := model.HistoryConfig{Last: last}
	if last < 0 {
		return cfg, fmt.Errorf("--last must be >= 0")
	}
	if mode != "" {
		parsed, err := session.ParseMode(mode)
		if err != nil {
			return cfg, fmt.Errorf("--mode: %w", err)
		}
		cfg.Mode = parsed.String()
	}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}
