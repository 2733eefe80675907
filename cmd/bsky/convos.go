package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmoggles/blueskysocial/convos"
)

var convosUnreadOnly bool

var convosCmd = &cobra.Command{
	Use:   "convos",
	Short: "Manage direct message conversations",
}

var convosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations",
	Args:  cobra.NoArgs,
	RunE:  runConvosList,
}

var convosSendCmd = &cobra.Command{
	Use:   "send [participant] [text]",
	Short: "Send a direct message to a participant",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvosSend,
}

func init() {
	convosListCmd.Flags().BoolVar(&convosUnreadOnly, "unread", false, "Only show conversations with unread messages")

	convosCmd.AddCommand(convosListCmd)
	convosCmd.AddCommand(convosSendCmd)
	rootCmd.AddCommand(convosCmd)
}

func runConvosList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, _, err := authenticatedClient(ctx)
	if err != nil {
		return err
	}

	list, err := c.Convos(ctx)
	if err != nil {
		return err
	}

	unread := convos.GT(convos.ByUnread, 0)
	for _, convo := range list {
		if convosUnreadOnly && !unread(convo) {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tunread=%d\t%s\n",
			convo.ID(), convo.Participant(), convo.UnreadCount(), convo.LastMessage())
	}
	return nil
}

func runConvosSend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	participant, text := args[0], args[1]

	c, _, err := authenticatedClient(ctx)
	if err != nil {
		return err
	}

	list, err := c.Convos(ctx)
	if err != nil {
		return err
	}

	match := convos.Or(
		convos.Eq(convos.ByParticipant, participant),
		convos.Eq((*convos.Convo).ID, participant),
	)
	for _, convo := range list {
		if !match(convo) {
			continue
		}
		msg, err := convo.SendMessage(ctx, text)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sent %s\n", msg.ID())
		return nil
	}

	return fmt.Errorf("no conversation with %q", participant)
}
