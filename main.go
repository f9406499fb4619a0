// pastel: clipboard history in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/kylesnowschwartz/pastel/pasteboard"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

// dumpWidth is the frame width used by --dump.
const dumpWidth = 120

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pastel",
		Short: "Clipboard history in the terminal",
		Long: `pastel watches the system clipboard and keeps what you copy as a
scrollable list of cards. Select a card to put it back on the clipboard.

Config file search order (first found wins):
  /etc/pastel/pastel.toml
  $HOME/.config/pastel/pastel.toml
  path supplied via --config

All flags can be set via PASTEL_<FLAG> env vars or config-file keys.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closeLog, err := resolve(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			if cfg.dump {
				return runDump(cmd.OutOrStdout(), cfg)
			}
			return runTUI(cmd.Context(), cfg)
		},
	}

	root.Flags().Bool("dump", false, "capture the clipboard once, print one frame and exit")
	addConfigFlag(root)
	addHistoryFlags(root)
	addLoggingFlags(root)

	root.AddCommand(
		newInspectCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pastel %s\n", Version)
		},
	}
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Classify the current clipboard and print how it would be shown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closeLog, err := resolve(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			width, _ := cmd.Flags().GetFloat64("width")
			return runInspect(cmd.OutOrStdout(), pasteboard.NewSystemClipboard(), cfg, pasteboard.Length(width))
		},
	}
	cmd.Flags().Float64("width", 364, "card width in points used for the height")
	return cmd
}

// runTUI runs the interactive card list until the user quits.
func runTUI(ctx context.Context, cfg config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hist := pasteboard.NewHistory(pasteboard.NewSystemClipboard(), cfg.history)
	m := newModel(ctx, pasteboard.NewPresenter(hist), termenv.HasDarkBackground())

	slog.Info("pastel starting", "version", Version)
	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// runDump captures the clipboard once and prints the list as it would be
// drawn, without entering the alt screen.
func runDump(w io.Writer, cfg config) error {
	cfg.history.WatchFiles = false
	hist := pasteboard.NewHistory(pasteboard.NewSystemClipboard(), cfg.history)
	if _, err := hist.Poll(); err != nil {
		slog.Warn("clipboard read failed", "err", err)
	}

	m := newModel(context.Background(), pasteboard.NewPresenter(hist), termenv.HasDarkBackground())
	m.width = dumpWidth
	m.applySnapshot(pasteboard.Snapshot{Seq: 1, Items: hist.Items()})
	m.height = m.totalRenderedLines + statusBarHeight + footerHeight
	_, err := fmt.Fprintln(w, m.render())
	return err
}

// runInspect classifies the clipboard's current contents and reports kind,
// display text and card height.
func runInspect(w io.Writer, clip pasteboard.Clipboard, cfg config, width pasteboard.Length) error {
	payload, err := clip.Read()
	if err != nil {
		return fmt.Errorf("reading %s: %w", clip.Name(), err)
	}
	c := &pasteboard.Classifier{MaxFileSize: cfg.history.MaxFileSize}
	item, err := c.Classify(payload)
	if errors.Is(err, pasteboard.ErrEmptyPayload) {
		_, err = fmt.Fprintf(w, "%s is empty\n", clip.Name())
		return err
	}
	if err != nil {
		return err
	}

	engine := pasteboard.NewEngine()
	height := engine.DisplayHeight(item, width)

	fmt.Fprintf(w, "backend: %s\n", clip.Name())
	fmt.Fprintf(w, "kind:    %s\n", pasteboard.KindOf(item))
	fmt.Fprintf(w, "summary: %s\n", pasteboard.Describe(item))
	fmt.Fprintf(w, "height:  %gpt (%d rows at %gpt wide)\n", float64(height), engine.Font.Rows(height), float64(width))
	if text := pasteboard.DisplayText(item); text != "" {
		fmt.Fprintf(w, "\n%s\n", text)
	}
	return nil
}
