package salesforce

import (
	"context"
	"encoding/json"
	"fmt"

	httpclient "github.com/natserract/sfchatter/pkg/http"
	"go.uber.org/zap"
)

// Authenticate retrieves an OAuth access token with the client credentials
// flow and stores it as the client's session.
func (c *Client) Authenticate(ctx context.Context) (*OAuth, error) {
	url, err := httpclient.JoinURL(c.config.LoginURI, "/services/oauth2/token")
	if err != nil {
		return nil, fmt.Errorf("failed to build token URL: %w", err)
	}
	c.logger.Info("Authenticating with Salesforce", zap.String("url", url))

	authReq := AuthRequest{
		GrantType:    "client_credentials",
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
	}

	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}

	resp, err := c.httpClient.Post(ctx, url, headers, authReq)
	if err != nil {
		c.logger.Error("Authentication request failed", zap.Error(err), zap.String("url", url))
		return nil, fmt.Errorf("authentication request failed: %w", err)
	}

	var oauth OAuth
	if err := json.Unmarshal(resp.Body, &oauth); err != nil {
		c.logger.Error("Failed to parse authentication response", zap.Error(err))
		return nil, fmt.Errorf("failed to parse authentication response: %w", err)
	}
	if oauth.AccessToken == "" || oauth.InstanceURL == "" {
		return nil, fmt.Errorf("authentication response is missing access_token or instance_url")
	}

	c.SetOAuth(&oauth)

	c.logger.Info("Successfully authenticated",
		zap.String("token_type", oauth.TokenType),
		zap.String("instance_url", oauth.InstanceURL))

	return &oauth, nil
}
