// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Admintoken mints an admin-role JWT offline, for operators who need to call
the alias-administration and author-directory write endpoints without a
running login flow.

Usage:

	go run cmd/admintoken/main.go [flags]

The flags are:

	-priv    path to the RS256 private key (default: reads JWT_PRIVATE_KEY_PATH)
	-pub     path to the RS256 public key (default: reads JWT_PUBLIC_KEY_PATH)
	-issuer  the 'iss' claim to embed (default: reads AuthIssuer)
	-sub     subject identifying the operator (required)
	-ttl     token lifetime (default: 24h)

The signed token is written to stdout. No business logic lives here beyond
argument parsing and token issuance.
*/
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/taibuivan/ribbit/internal/platform/constants"
	"github.com/taibuivan/ribbit/internal/platform/sec"
)

func main() {
	if err := run(); err != nil {
		slog.Error("admintoken_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	privKeyPath := flag.String("priv", os.Getenv("JWT_PRIVATE_KEY_PATH"), "path to RS256 private key")
	pubKeyPath := flag.String("pub", os.Getenv("JWT_PUBLIC_KEY_PATH"), "path to RS256 public key")
	issuer := flag.String("issuer", constants.AuthIssuer, "token issuer ('iss' claim)")
	subject := flag.String("sub", "", "operator identity ('sub' claim, required)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *subject == "" {
		return fmt.Errorf("admintoken: -sub is required")
	}
	if *privKeyPath == "" || *pubKeyPath == "" {
		return fmt.Errorf("admintoken: -priv and -pub (or JWT_PRIVATE_KEY_PATH/JWT_PUBLIC_KEY_PATH) are required")
	}

	tokenSvc, err := sec.NewTokenService(*privKeyPath, *pubKeyPath, *issuer)
	if err != nil {
		return fmt.Errorf("admintoken: initialize token service: %w", err)
	}

	token, err := tokenSvc.GenerateAccessToken(*subject, *subject, string(sec.RoleAdmin), *ttl)
	if err != nil {
		return fmt.Errorf("admintoken: generate token: %w", err)
	}

	fmt.Println(token)
	return nil
}
