package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"splice/internal/ipc"
)

func newAssetCommand(ctx *commandContext) *cobra.Command {
	assetCmd := &cobra.Command{
		Use:   "asset",
		Short: "Manage the media asset catalog",
	}

	assetCmd.AddCommand(newAssetListCommand(ctx))
	assetCmd.AddCommand(newAssetImportCommand(ctx))

	return assetCmd
}

func newAssetListCommand(ctx *commandContext) *cobra.Command {
	var mediaType string
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued media assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.AssetList(mediaType)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, resp)
				}
				stdout := cmd.OutOrStdout()
				if len(resp.Assets) == 0 {
					fmt.Fprintln(stdout, "No assets catalogued")
					return nil
				}
				rows := make([][]string, 0, len(resp.Assets))
				for _, a := range resp.Assets {
					dimensions := ""
					if a.Width > 0 || a.Height > 0 {
						dimensions = fmt.Sprintf("%dx%d", a.Width, a.Height)
					}
					rows = append(rows, []string{
						strconv.FormatInt(a.ID, 10),
						a.DisplayTitle,
						a.MediaType,
						formatMillis(a.DurationMS),
						dimensions,
						a.URL,
					})
				}
				table := renderTable(
					[]string{"ID", "Title", "Type", "Duration", "Size", "URL"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				)
				fmt.Fprintln(stdout, table)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mediaType, "type", "", "Filter by media type (video, audio, image)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit assets as JSON")
	return cmd
}

func newAssetImportCommand(ctx *commandContext) *cobra.Command {
	var mediaType string
	cmd := &cobra.Command{
		Use:   "import <url>",
		Short: "Probe a media file and add it to the asset catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.AssetImport(args[0], mediaType)
				if err != nil {
					return err
				}
				asset := resp.Asset
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%s, %s)\n",
					asset.DisplayTitle, asset.MediaType, formatMillis(asset.DurationMS))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mediaType, "type", "video", "Media type of the file (video, audio, image)")
	return cmd
}
