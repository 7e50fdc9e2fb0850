package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"splice/internal/daemonctl"
	"splice/internal/daemonrun"
	"splice/internal/ipc"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	daemonCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Manage the splice daemon process",
	}

	daemonCmd.AddCommand(newDaemonStartCommand(ctx))
	daemonCmd.AddCommand(newDaemonStopCommand(ctx))
	daemonCmd.AddCommand(newDaemonRestartCommand(ctx))
	daemonCmd.AddCommand(newDaemonStatusCommand(ctx))
	daemonCmd.AddCommand(newDaemonRunCommand(ctx))

	return daemonCmd
}

func newDaemonStartCommand(ctx *commandContext) *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the splice daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := daemonExecutable()
			if err != nil {
				return err
			}

			result, err := daemonctl.EnsureStarted(
				ctx.socketPath(),
				exe,
				daemonctl.LaunchOptions{ConfigPath: ctx.configPath(), LogLevel: logLevel},
				10*time.Second,
			)
			if err != nil {
				return err
			}

			if result.Launched {
				fmt.Fprintln(stdout, "Daemon not running, launching...")
			}

			switch result.State {
			case daemonctl.StartStateStarted:
				fmt.Fprintln(stdout, "Daemon started")
			case daemonctl.StartStateAlreadyRunning:
				fmt.Fprintln(stdout, "Daemon already running")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level for the launched daemon (debug, info, warn, error)")
	return cmd
}

func newDaemonStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the splice daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			acknowledged, err := daemonctl.Shutdown(ctx.socketPath(), 5*time.Second)
			if err != nil {
				return err
			}
			if !acknowledged {
				fmt.Fprintln(stdout, "Daemon is not running")
				return nil
			}
			fmt.Fprintln(stdout, "Daemon stopped")
			return nil
		},
	}
}

func newDaemonRestartCommand(ctx *commandContext) *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:   "restart",
		Short: "Restart the splice daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			acknowledged, err := daemonctl.Shutdown(ctx.socketPath(), 5*time.Second)
			if err != nil {
				return err
			}
			if acknowledged {
				fmt.Fprintln(stdout, "Daemon stopped")
			}

			exe, err := daemonExecutable()
			if err != nil {
				return err
			}
			if err := daemonctl.Launch(exe, daemonctl.LaunchOptions{ConfigPath: ctx.configPath(), LogLevel: logLevel}); err != nil {
				return err
			}
			client, err := daemonctl.WaitForClient(ctx.socketPath(), 10*time.Second)
			if err != nil {
				return err
			}
			_ = client.Close()
			fmt.Fprintln(stdout, "Daemon started")
			return nil
		},
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level for the launched daemon (debug, info, warn, error)")
	return cmd
}

func newDaemonStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and session status",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()

			client, err := ctx.dialClient()
			if err != nil {
				if jsonOutput {
					return writeJSON(cmd, ipc.StatusResponse{Running: false})
				}
				fmt.Fprintln(stdout, "Daemon is not running")
				return nil
			}
			defer client.Close()

			status, err := client.Status()
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, status)
			}

			colorize := shouldColorize(stdout)
			renderDaemonStatus(cmd, status, colorize)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit status as JSON")
	return cmd
}

func renderDaemonStatus(cmd *cobra.Command, status *ipc.StatusResponse, colorize bool) {
	stdout := cmd.OutOrStdout()

	for _, line := range renderSectionHeader("Daemon", colorize) {
		fmt.Fprintln(stdout, line)
	}
	runningKind := statusError
	if status.Running {
		runningKind = statusOK
	}
	fmt.Fprintln(stdout, renderStatusLine("Running", runningKind, yesNo(status.Running), colorize))
	fmt.Fprintln(stdout, renderStatusLine("PID", statusInfo, fmt.Sprintf("%d", status.PID), colorize))
	fmt.Fprintln(stdout, renderStatusLine("Database", statusInfo, status.DatabasePath, colorize))
	if status.APIAddr != "" {
		fmt.Fprintln(stdout, renderStatusLine("API", statusInfo, status.APIAddr, colorize))
	}
	fmt.Fprintln(stdout)

	for _, line := range renderSectionHeader("Dependencies", colorize) {
		fmt.Fprintln(stdout, line)
	}
	for _, dep := range status.Dependencies {
		kind := statusOK
		detail := dep.Command
		if !dep.Available {
			kind = statusError
			if dep.Optional {
				kind = statusWarn
			}
			if strings.TrimSpace(dep.Detail) != "" {
				detail = dep.Detail
			}
		}
		fmt.Fprintln(stdout, renderStatusLine(dep.Name, kind, detail, colorize))
	}
	fmt.Fprintln(stdout)

	for _, line := range renderSectionHeader("Session", colorize) {
		fmt.Fprintln(stdout, line)
	}
	if status.Session == nil {
		fmt.Fprintln(stdout, statusIndent+"No open session")
		return
	}
	sess := status.Session
	fmt.Fprintln(stdout, renderStatusLine("Project", statusInfo, sess.ProjectName, colorize))
	fmt.Fprintln(stdout, renderStatusLine("State", statusInfo, sess.State, colorize))
	fmt.Fprintln(stdout, renderStatusLine("Position", statusInfo, formatMillis(sess.PositionMS), colorize))
	fmt.Fprintln(stdout, renderStatusLine("Duration", statusInfo, formatMillis(sess.DurationMS), colorize))
	fmt.Fprintln(stdout, renderStatusLine("Active items", statusInfo, fmt.Sprintf("%d", len(sess.ActiveItems)), colorize))
	fmt.Fprintln(stdout, renderStatusLine("Undo", statusInfo, yesNo(sess.CanUndo), colorize))
	fmt.Fprintln(stdout, renderStatusLine("Redo", statusInfo, yesNo(sess.CanRedo), colorize))
}

func newDaemonRunCommand(ctx *commandContext) *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:    "run",
		Short:  "Run the daemon in the foreground",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return daemonrun.Run(cmd.Context(), cfg, daemonrun.Options{LogLevel: logLevel})
		},
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	return cmd
}

func daemonExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return exe, nil
}
