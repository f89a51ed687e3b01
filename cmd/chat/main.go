package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"reupyog-ai/internal/chatui"
	"reupyog-ai/internal/config"
	"reupyog-ai/internal/logging"
)

var (
	serverURL string
	logFile   string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "reupyog-chat",
	Short: "Chat with ReUpyog AI from the terminal",
	Long: `reupyog-chat is a terminal client for a ReUpyog AI server.
It keeps the conversation locally and sends the full history to the
server's /api/chat endpoint on every turn.`,
	SilenceUsage: true,
	RunE:         runChat,
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	defaultServer := os.Getenv("REUPYOG_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:9000"
	}

	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", defaultServer, "ReUpyog AI server URL (env REUPYOG_SERVER)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", filepath.Join(os.TempDir(), "reupyog-chat.log"), "path to the log file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup configures file logging and builds a session against the server.
func setup() (*chatui.Session, error) {
	level, err := config.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	// The terminal belongs to the UI, so logs always go to a file.
	logger, err := logging.Setup(logging.Options{Level: level, Format: "text", File: logFile})
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	logger.Info("Starting chat client", "server", serverURL)

	return chatui.NewSession(chatui.NewHTTPRelay(serverURL), logger), nil
}

func runChat(cmd *cobra.Command, args []string) error {
	session, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := chatui.NewProgram(ctx, session).Run(); err != nil {
		return fmt.Errorf("failed to run chat TUI: %w", err)
	}
	slog.Info("Chat client stopped", "messages", len(session.Messages()))
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	session, err := setup()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := session.Submit(ctx, strings.Join(args, " ")); err != nil {
		return err
	}
	msgs := session.Messages()
	if len(msgs) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "nothing to ask")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), msgs[len(msgs)-1].Content)
	return nil
}
