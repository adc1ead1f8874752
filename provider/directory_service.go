package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/uploadhub/uploadhub/config"
	"github.com/uploadhub/uploadhub/infra"
	"github.com/uploadhub/uploadhub/provider/dto"
)

// DirectoryServiceProvider talks to the live directory service over HTTP.
// Single-user lookups are cached in Redis because the identity middleware
// resolves the current user on every request.
type DirectoryServiceProvider struct {
	ServiceURL string
	APIKey     string

	cache    *infra.RedisClient
	cacheTTL time.Duration
	client   *http.Client
}

func NewDirectoryServiceProvider(cfg *config.EnvConfig, cache *infra.RedisClient) *DirectoryServiceProvider {
	serviceURL := cfg.Directory.ServiceURL
	if serviceURL == "" {
		panic("Directory service URL is not configured")
	}

	return &DirectoryServiceProvider{
		ServiceURL: serviceURL,
		APIKey:     cfg.Directory.APIKey,
		cache:      cache,
		cacheTTL:   time.Duration(cfg.Directory.CacheTTL) * time.Second,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

func (p *DirectoryServiceProvider) GetUser(ctx context.Context, samAccountName string) (*dto.DirectoryUser, error) {
	cacheKey := "directory:user:" + samAccountName

	var cached dto.DirectoryUser
	if err := p.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	var user *dto.DirectoryUser
	err := p.get(ctx, "/api/users/"+url.PathEscape(samAccountName), &user)
	if err != nil {
		return nil, err
	}

	if user != nil {
		_ = p.cache.Set(ctx, cacheKey, user, p.cacheTTL)
	}

	return user, nil
}

func (p *DirectoryServiceProvider) GetUserByGuid(ctx context.Context, guid uuid.UUID) (*dto.DirectoryUser, error) {
	var user *dto.DirectoryUser
	if err := p.get(ctx, "/api/users/guid/"+guid.String(), &user); err != nil {
		return nil, err
	}
	return user, nil
}

func (p *DirectoryServiceProvider) GetDomainUsers(ctx context.Context) ([]*dto.DirectoryUser, error) {
	var users []*dto.DirectoryUser
	if err := p.get(ctx, "/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (p *DirectoryServiceProvider) FindDomainUser(ctx context.Context, search string) ([]*dto.DirectoryUser, error) {
	var users []*dto.DirectoryUser
	if err := p.get(ctx, "/api/users/search/"+url.PathEscape(search), &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (p *DirectoryServiceProvider) IsMemberOf(ctx context.Context, samAccountName, group string) (bool, error) {
	var result struct {
		Member bool `json:"member"`
	}
	path := "/api/users/" + url.PathEscape(samAccountName) + "/member-of/" + url.PathEscape(group)
	if err := p.get(ctx, path, &result); err != nil {
		return false, err
	}
	return result.Member, nil
}

func (p *DirectoryServiceProvider) get(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.ServiceURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create directory request: %w", err)
	}
	if p.APIKey != "" {
		req.Header.Set("X-Api-Key", p.APIKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("directory service returned %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode directory response: %w", err)
	}

	return nil
}
