package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/ppecrypt/cmd/internal"
	"github.com/saylorsolutions/ppecrypt/pkg/splitmerge"
	"github.com/saylorsolutions/ppecrypt/pkg/timekey"
	"github.com/saylorsolutions/ppecrypt/pkg/timesync"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newRootCmd(cfg *config) *cobra.Command {
	root := &cobra.Command{
		Use:   "ppe",
		Short: "Split/merge envelope encryption with time-derived keys",
		Long: `ppe encrypts short text values into base64 envelopes using AES-192 keys derived from the clock and a shared salt.
Two parties with roughly synchronized clocks and the same salt derive the same key without exchanging it, as long as both work inside the same time window.
Use 'ppe key' to see the current key and its window, and 'ppe serve' to give devices a shared clock.

SECURITY:
    The key is predictable from the time alone, and envelopes have no integrity check.
This is obfuscation for cooperating parties, NOT confidentiality against an attacker who knows the scheme.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cfg.bindFlags(root.PersistentFlags())
	root.AddCommand(
		newEncryptCmd(cfg),
		newDecryptCmd(cfg),
		newKeyCmd(cfg),
		newInspectCmd(),
		newServeCmd(cfg),
	)
	return root
}

func newEncryptCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt VALUE",
		Short: "Encrypt VALUE into an envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cfg.logger()
			engine, err := cfg.engine(cmd.Flags(), logger)
			if err != nil {
				return err
			}
			var envelope string
			if cfg.key != "" {
				envelope, err = engine.EncryptWithKey(args[0], cfg.key)
			} else {
				envelope, err = engine.Encrypt(args[0], cfg.salt)
			}
			if err != nil {
				return fmt.Errorf("failed to encrypt: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), envelope)
			return err
		},
	}
}

func newDecryptCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt ENVELOPE",
		Short: "Decrypt ENVELOPE back to its value",
		Long: `Decrypt ENVELOPE back to its value.
A key from the wrong window doesn't cause an error, it produces garbage output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cfg.logger()
			engine, err := cfg.engine(cmd.Flags(), logger)
			if err != nil {
				return err
			}
			var value string
			if cfg.key != "" {
				value, err = engine.DecryptWithKey(args[0], cfg.key)
			} else {
				value, err = engine.Decrypt(args[0], cfg.salt)
			}
			if err != nil {
				return fmt.Errorf("failed to decrypt: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

func newKeyCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the key derived for the current window",
		Long: `Print the key derived for the current window as hex, or base64 with --encoded.
The window bounds are written to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cfg.logger()
			clock, err := cfg.clock(cmd.Flags(), logger)
			if err != nil {
				return err
			}
			unix := clock.Unix()
			key, err := timekey.DeriveAt(unix, cfg.salt)
			if err != nil {
				return fmt.Errorf("failed to derive key: %w", err)
			}
			start, end := timekey.Window(unix)
			internal.Echo("Window: %s to %s", formatUnix(start), formatUnix(end))
			logger.Debug("Derived key", "key", key.Fingerprint(), "unix", unix)

			out := hex.EncodeToString(key[:])
			if cfg.encoded {
				out = key.String()
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&cfg.encoded, "encoded", false, "Print the key as base64 instead of hex.")
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ENVELOPE",
		Short: "Show the layers of ENVELOPE without decrypting it",
		Long: `Show the layers of ENVELOPE without decrypting it.
Decoding is lenient, so this also works on legacy or damaged payloads that 'ppe decrypt' rejects.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layers := splitmerge.Inspect(args[0])
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "inner:  %q\n", layers.Inner)
			_, _ = fmt.Fprintf(out, "tokens: %d\n", len(layers.Tokens))
			_, _ = fmt.Fprintf(out, "left:   %d bytes %s\n", len(layers.Left), hex.EncodeToString(layers.Left))
			_, err := fmt.Fprintf(out, "right:  %d bytes %s\n", len(layers.Right), hex.EncodeToString(layers.Right))
			return err
		},
	}
}

func newServeCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local time to devices that derive keys",
		Long: `Serve the local time as JSON for 'ppe --time-url' and other clients.
Only GET is allowed, and CORS is open to any origin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cfg.logger()
			clock, err := cfg.clock(cmd.Flags(), logger)
			if err != nil {
				return err
			}
			handler, err := timesync.NewHandler(
				timesync.WithHandlerClock(clock),
				timesync.WithHandlerLogger(logger.Named("timesync")),
			)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, cfg.listen, handler, logger)
		},
	}
	cmd.Flags().StringVar(&cfg.listen, "listen", internal.Env(envListen, defaultListen), "Address to listen on. Defaults to $"+envListen+".")
	return cmd
}

func serve(ctx context.Context, addr string, handler http.Handler, logger hclog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		logger.Info("Serving time", "addr", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
