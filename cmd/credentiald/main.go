// Command credentiald wires the credential engine's core services to
// their embedded databases and serves the HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"

	"github.com/ParichayaHQ/credentiald/internal/config"
	"github.com/ParichayaHQ/credentiald/internal/httpapi"
	"github.com/ParichayaHQ/credentiald/internal/issuance"
	"github.com/ParichayaHQ/credentiald/internal/issuerservice"
	"github.com/ParichayaHQ/credentiald/internal/obslog"
	"github.com/ParichayaHQ/credentiald/internal/policystore"
	"github.com/ParichayaHQ/credentiald/internal/registry"
	"github.com/ParichayaHQ/credentiald/internal/schemaservice"
	"github.com/ParichayaHQ/credentiald/internal/suite"
	"github.com/ParichayaHQ/credentiald/internal/vault"
	"github.com/ParichayaHQ/credentiald/internal/verifyengine"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dev := flag.Bool("dev", false, "use a human-readable development logger instead of JSON")
	flag.Parse()

	if err := run(*addr, *dev); err != nil {
		fmt.Fprintln(os.Stderr, "credentiald:", err)
		os.Exit(1)
	}
}

func run(addr string, dev bool) error {
	log, err := newLogger(dev)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	reg, err := registry.Open(&cfg.Registry, log)
	if err != nil {
		return fmt.Errorf("open registry: %w", err)
	}
	defer reg.Close()

	kv, err := vault.Open(&cfg.IssuerKeys)
	if err != nil {
		return fmt.Errorf("open vault: %w", err)
	}
	defer kv.Close()

	policies, err := policystore.Open(&cfg.VerifierPolicies, log)
	if err != nil {
		return fmt.Errorf("open policy store: %w", err)
	}
	defer policies.Close()

	cryptoSuite := suite.New()

	issuers := issuerservice.New(reg, kv, log)
	schemas := schemaservice.New(reg, log)
	issuer := issuance.New(reg, kv, cryptoSuite, log)
	verifier := verifyengine.New(reg, policies, cryptoSuite, log)

	handler := httpapi.NewRouter(httpapi.Services{
		Issuers:  issuers,
		Schemas:  schemas,
		Issuance: issuer,
		Verifier: verifier,
	}, log)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(dev bool) (logr.Logger, error) {
	if dev {
		return obslog.NewDevelopment()
	}
	return obslog.New()
}
