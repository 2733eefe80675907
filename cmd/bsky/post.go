package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmoggles/blueskysocial/post"
)

var (
	postImages []string
	postAlts   []string
	postVideo  string
	postCard   string
	postLangs  []string
)

var postCmd = &cobra.Command{
	Use:   "post [text]",
	Short: "Publish a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPost,
}

func init() {
	postCmd.Flags().StringSliceVar(&postImages, "image", nil, "Path to an image attachment (repeatable)")
	postCmd.Flags().StringSliceVar(&postAlts, "alt", nil, "Alt text for the corresponding attachment (repeatable)")
	postCmd.Flags().StringVar(&postVideo, "video", "", "Path to a video attachment")
	postCmd.Flags().StringVar(&postCard, "card", "", "URL to attach as a link preview card")
	postCmd.Flags().StringSliceVar(&postLangs, "lang", nil, "Language tag for the post (repeatable)")

	rootCmd.AddCommand(postCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	attachments, err := buildAttachments()
	if err != nil {
		return err
	}

	p, err := post.New(args[0], post.WithAttachments(attachments...))
	if err != nil {
		return err
	}
	if len(postLangs) > 0 {
		p.AddLanguages(postLangs...)
	}

	c, _, err := authenticatedClient(ctx)
	if err != nil {
		return err
	}

	ref, err := c.Post(ctx, p)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ref.URI)
	return nil
}

func buildAttachments() ([]post.Attachment, error) {
	var attachments []post.Attachment

	for i, path := range postImages {
		alt := ""
		if i < len(postAlts) {
			alt = postAlts[i]
		}
		img, err := post.NewImage(path, alt)
		if err != nil {
			return nil, fmt.Errorf("load image %s: %w", path, err)
		}
		attachments = append(attachments, img)
	}

	if postVideo != "" {
		alt := ""
		if len(postAlts) > len(postImages) {
			alt = postAlts[len(postImages)]
		}
		attachments = append(attachments, post.NewVideo(postVideo, alt))
	}

	if postCard != "" {
		attachments = append(attachments, post.NewWebCard(postCard))
	}

	return attachments, nil
}
