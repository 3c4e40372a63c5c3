package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"farmwatch/internal/backend"
	"farmwatch/internal/logging"
	"farmwatch/internal/monitor"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Poll the farm and keep the status page current until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(cmd, ctx, false)
		},
	}
}

func newOnceCommand(ctx *commandContext) *cobra.Command {
	var openViewer bool
	cmd := &cobra.Command{
		Use:   "once",
		Short: "Run a single poll cycle and write the status page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg.Monitor.OpenViewer = cfg.Monitor.OpenViewer && openViewer
			if err := runMonitor(cmd, ctx, true); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfg.Monitor.OutputPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&openViewer, "open", false, "Open the status page in the viewer after writing it")
	return cmd
}

func runMonitor(cmd *cobra.Command, ctx *commandContext, once bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if ctx.configSeen {
		logger.Debug("configuration loaded", logging.String("path", ctx.configPath))
	} else {
		logger.Info("no configuration file found; using defaults", logging.String("path", ctx.configPath))
	}

	src, err := backend.Open(cfg)
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	defer backend.Close(src)

	m, err := monitor.New(cfg, src, logger)
	if err != nil {
		return fmt.Errorf("create monitor: %w", err)
	}
	if !once {
		return m.Run(signalCtx)
	}

	if err := m.Acquire(); err != nil {
		return err
	}
	defer m.Release()
	return m.RunCycle(signalCtx)
}
