package main

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ndewijer/Banking-Admin-Backend/internal/ledger"
)

type previewOptions struct {
	version   string
	txType    string
	amount    string
	balance   string
	pending   bool
	receiving bool
}

func newPreviewCommand() *cobra.Command {
	opts := previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Compute the balance preview and submission amount for a transaction",
		Example: `  bank-admin preview --type ach_debit --amount 1250 --balance 20249.75
  bank-admin preview --taxonomy v1 --type wire --amount 100 --receiving=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.version, "taxonomy", "v2", "taxonomy version (v1 or v2)")
	cmd.Flags().StringVar(&opts.txType, "type", "", "transaction type tag")
	cmd.Flags().StringVar(&opts.amount, "amount", "", "unsigned amount")
	cmd.Flags().StringVar(&opts.balance, "balance", "", "current balance of the target account")
	cmd.Flags().BoolVar(&opts.pending, "pending", false, "mark the transaction as pending (v2)")
	cmd.Flags().BoolVar(&opts.receiving, "receiving", true, "money is received by the account (v1)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runPreview(out io.Writer, opts previewOptions) error {
	v, err := ledger.ParseTaxonomyVersion(opts.version)
	if err != nil {
		return err
	}
	rule, err := ledger.RuleFor(v)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(opts.amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", opts.amount, err)
	}

	t := ledger.TransactionType(opts.txType)
	class, err := rule.Classify(t)
	if err != nil {
		return err
	}
	flags := ledger.Flags{IsPending: opts.pending, IsReceiving: opts.receiving}

	delta, err := rule.PreviewDelta(t, amount, flags)
	if err != nil {
		return err
	}
	submitted, err := rule.SubmissionAmount(t, amount, flags)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "taxonomy:   %s\n", v)
	fmt.Fprintf(out, "class:      %s\n", class)
	fmt.Fprintf(out, "delta:      %s\n", ledger.FormatCurrency(delta))
	if opts.balance != "" {
		current, err := decimal.NewFromString(opts.balance)
		if err != nil {
			return fmt.Errorf("invalid balance %q: %w", opts.balance, err)
		}
		fmt.Fprintf(out, "current:    %s\n", ledger.FormatCurrency(current))
		fmt.Fprintf(out, "projected:  %s\n", ledger.FormatCurrency(ledger.Project(current, delta)))
	}
	fmt.Fprintf(out, "submitted:  %s\n", ledger.WireAmount(submitted))
	return nil
}
