package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"

	helpline "github.com/mudasir256/helplineapp"
)

const defaultTimeout = 10 * time.Second

// Client talks to the helpline backend: the four adoption endpoint families
// plus the auth surface. Single-record GETs are cached briefly; list and
// my-adoptions calls always hit the backend since they feed reconciliation.
type Client struct {
	http    *http.Client
	baseURL string
	cache   *cache.Cache
	storage *Storage
}

func New(baseURL string, storage *Storage) *Client {
	return &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		baseURL: baseURL,
		cache:   cache.New(10*time.Minute, 15*time.Minute),
		storage: storage,
	}
}

func (c *Client) Storage() *Storage { return c.storage }

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.storage.BearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &BackendError{
			StatusCode: resp.StatusCode,
			Message:    backendMessage(raw),
		}
	}
	return raw, nil
}

// backendMessage extracts the structured message from an error body, if one
// was sent.
func backendMessage(body []byte) string {
	var probe struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	if probe.Message != "" {
		return probe.Message
	}
	return probe.Error
}

func domainPath(domain helpline.Domain) string {
	return "/api/adopt-" + string(domain)
}

// ListOpportunities fetches every record in one domain. Dual-shape responses
// are normalized at this boundary.
func (c *Client) ListOpportunities(ctx context.Context, domain helpline.Domain) ([]helpline.RawRecord, error) {
	body, err := c.do(ctx, http.MethodGet, domainPath(domain), nil)
	if err != nil {
		return nil, err
	}
	return helpline.DecodeList(body).Data, nil
}

// GetOpportunity fetches a single record, serving repeats from cache.
func (c *Client) GetOpportunity(ctx context.Context, domain helpline.Domain, id string) (helpline.RawRecord, error) {
	cacheKey := string(domain) + ":" + id
	if x, found := c.cache.Get(cacheKey); found {
		return x.(helpline.RawRecord), nil
	}

	body, err := c.do(ctx, http.MethodGet, domainPath(domain)+"/"+url.PathEscape(id), nil)
	if err != nil {
		return helpline.RawRecord{}, err
	}

	record := helpline.DecodeSingle(body).Data
	c.cache.Set(cacheKey, record, cache.DefaultExpiration)
	return record, nil
}

// Adopt registers a sponsorship pledge for one record.
func (c *Client) Adopt(ctx context.Context, domain helpline.Domain, id string, req helpline.AdoptRequest) error {
	if req.Email == "" {
		return &ValidationError{Reason: "sponsor email is required"}
	}
	_, err := c.do(ctx, http.MethodPost, domainPath(domain)+"/"+url.PathEscape(id)+"/adopt", req)
	if err == nil {
		c.cache.Delete(string(domain) + ":" + id)
	}
	return err
}

// Unadopt removes an existing sponsorship.
func (c *Client) Unadopt(ctx context.Context, domain helpline.Domain, id string, who helpline.Identity) error {
	if who.Email == "" {
		return &ValidationError{Reason: "sponsor email is required"}
	}
	path := domainPath(domain) + "/" + url.PathEscape(id) + "/unadopt?" + identityQuery(who)
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	if err == nil {
		c.cache.Delete(string(domain) + ":" + id)
	}
	return err
}

// MyAdoptions lists the caller's confirmed sponsorships in one domain.
func (c *Client) MyAdoptions(ctx context.Context, domain helpline.Domain, who helpline.Identity) ([]helpline.RawRecord, error) {
	if who.Email == "" {
		return nil, &ValidationError{Reason: "sponsor email is required"}
	}
	body, err := c.do(ctx, http.MethodGet, domainPath(domain)+"/my-adoptions?"+identityQuery(who), nil)
	if err != nil {
		return nil, err
	}
	return helpline.DecodeList(body).Data, nil
}

func identityQuery(who helpline.Identity) string {
	params := url.Values{}
	if who.UserID != "" {
		params.Set("userId", who.UserID)
	}
	if who.Email != "" {
		params.Set("email", who.Email)
	}
	if who.Phone != "" {
		params.Set("phone", who.Phone)
	}
	return params.Encode()
}
