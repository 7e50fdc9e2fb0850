package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/ipc"
)

func newPlaybackCommands(ctx *commandContext) []*cobra.Command {
	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Start or resume playback of the open session",
		RunE:  sessionActionRunE(ctx, func(c *ipc.Client) (*ipc.SessionResponse, error) { return c.Play() }),
	}

	pauseCmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause playback, keeping the playhead in place",
		RunE:  sessionActionRunE(ctx, func(c *ipc.Client) (*ipc.SessionResponse, error) { return c.Pause() }),
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop playback and reset the playhead",
		RunE:  sessionActionRunE(ctx, func(c *ipc.Client) (*ipc.SessionResponse, error) { return c.Stop() }),
	}

	seekCmd := &cobra.Command{
		Use:   "seek <position>",
		Short: "Move the playhead to a position (milliseconds or m:ss.mmm)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := parseMillis(args[0])
			if err != nil {
				return err
			}
			return runSessionAction(ctx, cmd, func(c *ipc.Client) (*ipc.SessionResponse, error) {
				return c.Seek(position)
			})
		},
	}

	undoCmd := &cobra.Command{
		Use:   "undo",
		Short: "Revert the most recent edit to the open session's timeline",
		RunE:  sessionActionRunE(ctx, func(c *ipc.Client) (*ipc.SessionResponse, error) { return c.Undo() }),
	}

	redoCmd := &cobra.Command{
		Use:   "redo",
		Short: "Reapply the most recently undone edit",
		RunE:  sessionActionRunE(ctx, func(c *ipc.Client) (*ipc.SessionResponse, error) { return c.Redo() }),
	}

	return []*cobra.Command{playCmd, pauseCmd, stopCmd, seekCmd, undoCmd, redoCmd}
}

func sessionActionRunE(ctx *commandContext, action func(*ipc.Client) (*ipc.SessionResponse, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return runSessionAction(ctx, cmd, action)
	}
}

func runSessionAction(ctx *commandContext, cmd *cobra.Command, action func(*ipc.Client) (*ipc.SessionResponse, error)) error {
	return ctx.withClient(func(client *ipc.Client) error {
		resp, err := action(client)
		if err != nil {
			return err
		}
		sess := resp.Session
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s at %s of %s\n",
			sess.ProjectName, sess.State, formatMillis(sess.PositionMS), formatMillis(sess.DurationMS))
		return nil
	})
}

func newSessionCommand(ctx *commandContext) *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or close the open playback session",
	}

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the open session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}
				if status.Session == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "No open session")
					return nil
				}
				return writeJSON(cmd, status.Session)
			})
		},
	})

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "close",
		Short: "Close the open session and release media resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.SessionClose(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Session closed")
				return nil
			})
		},
	})

	return sessionCmd
}
