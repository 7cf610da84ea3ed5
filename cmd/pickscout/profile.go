package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/pickscout/internal/datasource"
	"github.com/yourusername/pickscout/internal/models"
	"github.com/yourusername/pickscout/internal/profile"
)

var (
	profileBankroll float64
	profileRisk     string
	profileUnitSize float64
	profileEmail    string
)

func init() {
	profileCmd.Flags().Float64Var(&profileBankroll, "bankroll", 0, "Total bankroll in dollars")
	profileCmd.Flags().StringVar(&profileRisk, "risk", string(models.RiskModerate), "conservative, moderate or aggressive")
	profileCmd.Flags().Float64Var(&profileUnitSize, "unit-size", 0, "Override the suggested unit size")
	profileCmd.Flags().StringVar(&profileEmail, "email", "", "Optional contact email")
	_ = profileCmd.MarkFlagRequired("bankroll")
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Compute a unit size from your bankroll and save the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		tolerance, err := models.ParseRiskTolerance(profileRisk)
		if err != nil {
			return err
		}
		p, err := profile.New(profileBankroll, tolerance)
		if err != nil {
			return err
		}
		if profileUnitSize > 0 {
			if p, err = profile.WithUnitSize(p, profileUnitSize); err != nil {
				return err
			}
		}
		if profileEmail != "" {
			email := profileEmail
			p.Email = &email
		}

		client, err := datasource.NewClient(cfg.Client, appLog)
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		saved, err := client.Profile.SaveProfile(ctx, p)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %s: bankroll $%.2f, unit $%.2f (%s)\n",
			saved.ID, saved.Bankroll, saved.UnitSize, saved.RiskTolerance)
		return nil
	},
}
