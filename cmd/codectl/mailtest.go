// cmd/codectl/mailtest.go
package main

import (
	"fmt"

	"github.com/pressart/storefront-api/internal/config"
	"github.com/pressart/storefront-api/internal/pkg/email"
	"github.com/spf13/cobra"
)

func mailTestCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "mail-test",
		Short: "Send a test email through the configured provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if to == "" {
				to = cfg.External.Email.ShopInbox
			}
			if to == "" {
				return fmt.Errorf("no recipient: pass --to or set SHOP_INBOX")
			}

			svc := email.NewEmailService(cfg)
			err = svc.SendEmail(cmd.Context(), &email.Email{
				To:          []string{to},
				Subject:     fmt.Sprintf("Test email from %s", cfg.App.Name),
				HTMLContent: "<h1>Success!</h1><p>Email delivery is working.</p>",
				Type:        email.EmailTypeCheckoutRequest,
			})
			if err != nil {
				return fmt.Errorf("send failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Test email sent to %s via %s\n", to, cfg.External.Email.Provider)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "recipient (default SHOP_INBOX)")

	return cmd
}
