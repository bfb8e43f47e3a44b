package strava

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

const (
	authorizePath   = "/oauth/authorize"
	tokenPath       = "/oauth/token"
	deauthorizePath = "/oauth/deauthorize"
)

// OAuth scopes accepted by the authorization endpoint.
const (
	ScopePublic           = "public"
	ScopeWrite            = "write"
	ScopeViewPrivate      = "view_private"
	ScopeViewPrivateWrite = "view_private,write"
)

// OAuthConfig carries the application credentials issued by Strava.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
}

func (c *Client) oauth2Config(cfg OAuthConfig) *oauth2.Config {
	var scopes []string
	if cfg.Scope != "" {
		scopes = []string{cfg.Scope}
	}
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.baseURL + authorizePath,
			TokenURL:  c.baseURL + tokenPath,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthorizationURL returns the browser URL that asks the athlete to approve
// the application. The caller is responsible for presenting it and receiving
// the redirect; pass the resulting code to ExchangeToken.
func (c *Client) AuthorizationURL(cfg OAuthConfig, state string) string {
	return c.oauth2Config(cfg).AuthCodeURL(state)
}

// ExchangeToken trades an authorization code for an access token and installs
// it, together with the athlete profile returned alongside, on the client.
func (c *Client) ExchangeToken(ctx context.Context, cfg OAuthConfig, code string) (*Athlete, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("authorization code is required")
	}

	if hc, ok := c.http.(*http.Client); ok {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, hc)
	}

	tok, err := c.oauth2Config(cfg).Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	var athlete *Athlete
	if raw, ok := tok.Extra("athlete").(map[string]any); ok {
		athlete, err = newAthlete(raw)
		if err != nil {
			return nil, err
		}
	}

	c.creds.SetToken(tok.AccessToken)
	if athlete != nil {
		c.creds.SetProfile(athlete)
	}
	return athlete, nil
}

// Deauthorize revokes the stored access token server-side and clears the
// client's credentials.
func (c *Client) Deauthorize(ctx context.Context) error {
	if c.creds.Token() == "" {
		return &Error{Kind: KindNoAccessToken, Message: "no access token to revoke"}
	}
	if _, err := c.object(ctx, http.MethodPost, deauthorizePath, true, nil); err != nil {
		return err
	}
	c.creds.Clear()
	return nil
}
