package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prioritix/services"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue and revoke access tokens",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Print a signed access token for a user",
	Args:  cobra.NoArgs,
	RunE:  runTokenIssue,
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "revoke <token>",
	Short: "Blacklist an access token until it expires",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenRevoke,
}

var (
	tokenUser string
	tokenTTL  time.Duration
)

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenIssueCmd, tokenRevokeCmd)

	tokenIssueCmd.Flags().StringVarP(&tokenUser, "user", "u", "", "User ID to put in the token")
	tokenIssueCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (default JWT_EXPIRATION_TIME)")
	_ = tokenIssueCmd.MarkFlagRequired("user")
}

func runTokenIssue(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	if cfg.Auth.SecretKey == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}

	ttl := tokenTTL
	if ttl <= 0 {
		ttl = cfg.Auth.AccessTokenTTL
	}

	token, err := services.GenerateAccessToken(cfg.Auth.SecretKey, cfg.Auth.Issuer, tokenUser, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func runTokenRevoke(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if cfg.Redis.URL == "" {
		return errors.New("REDIS_URL is required to revoke tokens")
	}

	claims, err := services.ParseAccessToken(args[0], cfg.Auth.SecretKey, cfg.Auth.Issuer)
	if err != nil {
		return fmt.Errorf("refusing to revoke: %w", err)
	}

	blacklist, err := services.NewTokenBlacklist(cfg.Redis.URL)
	if err != nil {
		return err
	}
	defer blacklist.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := blacklist.Revoke(ctx, args[0], ttl); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "revoked token for user %s until %s\n",
		claims.UserID, claims.ExpiresAt.Time.Format(time.RFC3339))
	return nil
}
