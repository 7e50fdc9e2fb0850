package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"splice/internal/config"
	"splice/internal/ipc"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage stored timeline projects",
	}

	projectCmd.AddCommand(newProjectListCommand(ctx))
	projectCmd.AddCommand(newProjectShowCommand(ctx))
	projectCmd.AddCommand(newProjectSaveCommand(ctx))
	projectCmd.AddCommand(newProjectOpenCommand(ctx))
	projectCmd.AddCommand(newProjectDeleteCommand(ctx))

	return projectCmd
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ProjectList()
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, resp)
				}
				stdout := cmd.OutOrStdout()
				if len(resp.Projects) == 0 {
					fmt.Fprintln(stdout, "No projects stored")
					return nil
				}
				rows := make([][]string, 0, len(resp.Projects))
				for _, p := range resp.Projects {
					rows = append(rows, []string{
						strconv.FormatInt(p.ID, 10),
						p.Name,
						strconv.Itoa(p.TrackCount),
						formatMillis(p.DurationMS),
						p.UpdatedAt,
					})
				}
				table := renderTable(
					[]string{"ID", "Name", "Tracks", "Duration", "Updated"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft},
				)
				fmt.Fprintln(stdout, table)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit projects as JSON")
	return cmd
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a stored project and its timeline document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ProjectShow(args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd, resp)
			})
		},
	}
}

func newProjectSaveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <document.json>",
		Short: "Store a timeline document under a project name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocumentFile(args[1])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ProjectSave(args[0], doc)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved project %s (%d tracks, %s)\n",
					resp.Project.Name, resp.Project.TrackCount, formatMillis(resp.Project.DurationMS))
				return nil
			})
		},
	}
}

func newProjectOpenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "open <name>",
		Short: "Open a playback session on a stored project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ProjectOpen(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Opened %s (session %s, %s)\n",
					resp.Session.ProjectName, resp.Session.SessionID, formatMillis(resp.Session.DurationMS))
				return nil
			})
		},
	}
}

func newProjectDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.ProjectDelete(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
				return nil
			})
		},
	}
}

func readDocumentFile(path string) (ipc.Document, error) {
	var doc ipc.Document
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return doc, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return doc, fmt.Errorf("read document: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse document %s: %w", path, err)
	}
	return doc, nil
}
