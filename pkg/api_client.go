package pkg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Bumblebig/UniSupport/models"
)

// ExchangeResult mirrors the server's POST /chat response
type ExchangeResult struct {
	Reply     models.Message `json:"reply"`
	Delivered bool           `json:"delivered"`
}

// AuthResult mirrors the server's login/signup response
type AuthResult struct {
	User     models.User `json:"user"`
	Token    string      `json:"token"`
	ExpireAt time.Time   `json:"expire_at"`
}

// QuickActionList mirrors the server's GET /quick-actions response
type QuickActionList struct {
	Categories []models.Category    `json:"categories"`
	Actions    []models.QuickAction `json:"actions"`
}

// APIClient talks to the UniSupport server. It keeps the session token
// after login and notifies subscribers when the session opens or closes,
// which makes it a session provider for the view guard.
type APIClient struct {
	base   string
	client *http.Client

	mu      sync.Mutex
	token   string
	owner   string
	subs    map[int]func(models.SessionEvent)
	nextSub int
}

func NewAPIClient(base string) *APIClient {
	return &APIClient{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{},
		subs:   make(map[int]func(models.SessionEvent)),
	}
}

// Subscribe registers fn for session change notifications and returns a
// function that unsubscribes it
func (c *APIClient) Subscribe(fn func(models.SessionEvent)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Login authenticates and opens the client session
func (c *APIClient) Login(mail, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do("POST", "/auth/login", map[string]string{
		"mail":     mail,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}

	c.openSession(result.User.UID, result.Token)
	return &result, nil
}

// Signup creates an account and opens the client session
func (c *APIClient) Signup(name, mail, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do("POST", "/auth/signup", map[string]string{
		"name":     name,
		"mail":     mail,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}

	c.openSession(result.User.UID, result.Token)
	return &result, nil
}

// Logout revokes the session server-side and closes the client session
func (c *APIClient) Logout() error {
	err := c.do("POST", "/auth/logout", nil, nil)
	c.closeSession()
	return err
}

// Messages fetches the owner's conversation history
func (c *APIClient) Messages() ([]models.Message, error) {
	var messages []models.Message
	if err := c.do("GET", "/messages", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Chat submits one message and returns the exchange outcome
func (c *APIClient) Chat(message string) (*ExchangeResult, error) {
	var result ExchangeResult
	err := c.do("POST", "/chat", map[string]string{"message": message}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// QuickActions fetches the catalogue filtered by category
func (c *APIClient) QuickActions(category string) (*QuickActionList, error) {
	path := "/quick-actions"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var list QuickActionList
	if err := c.do("GET", path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *APIClient) openSession(uid, token string) {
	c.mu.Lock()
	c.token = token
	c.owner = uid
	c.mu.Unlock()
	c.notify(models.SessionEvent{UID: uid, Active: true})
}

func (c *APIClient) closeSession() {
	c.mu.Lock()
	uid := c.owner
	c.token = ""
	c.owner = ""
	c.mu.Unlock()
	if uid != "" {
		c.notify(models.SessionEvent{UID: uid, Active: false})
	}
}

func (c *APIClient) notify(ev models.SessionEvent) {
	c.mu.Lock()
	subs := make([]func(models.SessionEvent), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

func (c *APIClient) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %v", err)
	}

	// A rejected token means the session died server-side.
	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		c.closeSession()
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %v", err)
	}
	return nil
}
