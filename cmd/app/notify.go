package main

import (
	"fmt"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/spf13/cobra"
)

func newNotifyCommand(ctx *commandContext) *cobra.Command {
	var userFlag, titleFlag, bodyFlag string

	c := &cobra.Command{
		Use:   "notify",
		Short: "Send a notification to every device of a user",
		RunE: func(c *cobra.Command, args []string) error {
			userID, err := kernel.ParseUUID(userFlag)
			if err != nil {
				return err
			}
			cmd, err := commands.NewSendNotificationCommand(userID, titleFlag, bodyFlag, "", "", nil)
			if err != nil {
				return err
			}

			root, err := ctx.compositionRoot(c.Context())
			if err != nil {
				return err
			}
			handler := root.CreateSendNotificationCommandHandler()
			report, err := handler.Handle(c.Context(), cmd)
			if err != nil {
				return err
			}

			if report.Recipients == 0 {
				fmt.Fprintln(c.OutOrStdout(), "User has no registered devices")
				return nil
			}
			fmt.Fprintf(c.OutOrStdout(), "Sent %d of %d (%d invalid, %d pruned)\n",
				report.Delivered, report.Recipients, report.Invalid, report.Pruned)
			return nil
		},
	}
	c.Flags().StringVar(&userFlag, "user", "", "Recipient user id")
	c.Flags().StringVar(&titleFlag, "title", "", "Notification title")
	c.Flags().StringVar(&bodyFlag, "body", "", "Notification body")
	_ = c.MarkFlagRequired("user")
	_ = c.MarkFlagRequired("title")
	_ = c.MarkFlagRequired("body")
	return c
}
