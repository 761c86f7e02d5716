package main

import (
	"fmt"
	"os"

	"Tickfunds/internal/domain/models"
	"Tickfunds/internal/usecase"
	"Tickfunds/pkg/util"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (c *cli) emiCmd() *cobra.Command {
	req := models.DefaultEMIRequest()
	cmd := &cobra.Command{
		Use:   "emi",
		Short: "Compute a loan EMI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate(cmd, &req); err != nil {
				return err
			}
			q, err := usecase.NewLoanService(c.catalog, nil).Quote(cmd.Context(), req)
			if err != nil {
				return appError(err)
			}
			return c.print(cmd.OutOrStdout(), q)
		},
	}
	cmd.Flags().Float64Var(&req.Principal, "principal", req.Principal, "loan amount in rupees")
	cmd.Flags().Float64Var(&req.AnnualRate, "rate", req.AnnualRate, "annual interest rate in percent")
	cmd.Flags().IntVar(&req.Months, "months", req.Months, "tenure in months")
	cmd.Flags().BoolVar(&req.Schedule, "schedule", false, "include the amortization schedule")
	return cmd
}

func (c *cli) riskCmd() *cobra.Command {
	var answersPath string
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Score a risk profile questionnaire",
		Long: `Score a risk profile from a YAML file mapping question id to option value:

  answers:
    age: "26-35"
    investment_horizon: "10+"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(answersPath)
			if err != nil {
				return fmt.Errorf("read answers: %w", err)
			}
			var req models.RiskAnswersRequest
			if err := yaml.Unmarshal(raw, &req); err != nil {
				return fmt.Errorf("parse answers: %w", err)
			}
			res, err := usecase.NewRiskService(c.catalog.RiskQuiz(), nil).Assess(cmd.Context(), req.Answers)
			if err != nil {
				return appError(err)
			}
			return c.print(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&answersPath, "answers", "", "YAML answers file")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func (c *cli) screenCmd() *cobra.Command {
	f := models.DefaultFundFilter()
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Filter and sort mutual funds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.RiskLevels = util.SplitList(f.RiskLevels...)
			f.FundHouses = util.SplitList(f.FundHouses...)
			if err := validate(cmd, &f); err != nil {
				return err
			}
			res, err := usecase.NewFundService(c.catalog, nil, 0, nil, nil, nil, nil).Screen(cmd.Context(), f)
			if err != nil {
				return appError(err)
			}
			return c.print(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringSliceVar(&f.RiskLevels, "risk", nil, "risk levels (Low, Moderate, High, Very High)")
	cmd.Flags().StringSliceVar(&f.FundHouses, "house", nil, "fund houses")
	cmd.Flags().StringVar(&f.Category, "category", "", "category")
	cmd.Flags().StringVarP(&f.Search, "query", "q", "", "search over name and fund house")
	cmd.Flags().Float64Var(&f.MinInvestment, "min-investment", f.MinInvestment, "lower bound of the minimum investment")
	cmd.Flags().Float64Var(&f.MaxInvestment, "max-investment", f.MaxInvestment, "upper bound of the minimum investment")
	cmd.Flags().Float64Var(&f.MinReturns1Y, "min-returns", 0, "minimum 1Y return in percent")
	cmd.Flags().StringVar(&f.SortBy, "sort", f.SortBy, "sort key")
	cmd.Flags().StringVar(&f.SortOrder, "order", f.SortOrder, "asc or desc")
	return cmd
}

func (c *cli) powerCmd() *cobra.Command {
	req := models.DefaultBorrowingPowerRequest()
	cmd := &cobra.Command{
		Use:   "power",
		Short: "Compute borrowing power",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate(cmd, &req); err != nil {
				return err
			}
			res, err := usecase.NewLoanService(c.catalog, nil).BorrowingPower(cmd.Context(), req)
			if err != nil {
				return appError(err)
			}
			return c.print(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().Float64Var(&req.MonthlyIncome, "income", req.MonthlyIncome, "monthly income")
	cmd.Flags().Float64Var(&req.ExistingEMI, "emi", req.ExistingEMI, "existing monthly EMIs")
	cmd.Flags().Float64Var(&req.MonthlyExpenses, "expenses", req.MonthlyExpenses, "monthly expenses")
	return cmd
}
