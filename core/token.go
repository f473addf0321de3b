package core

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/idena-network/ecosystem-client/types"
	log "github.com/inconshreveable/log15"
)

const (
	authTokenKey = "authToken"
	// Parsing accepts timestamps with and without fractional seconds.
	expirationDateLayout = time.RFC3339Nano
)

var marshalToken = json.Marshal

// AuthToken returns the cached token or, when nothing is cached, the persisted one if it has not expired yet.
// A cached token is returned without an expiry check.
func (c *RestClient) AuthToken() *types.AuthToken {
	c.tokenMutex.Lock()
	defer c.tokenMutex.Unlock()
	if c.lastToken != nil {
		token := *c.lastToken
		return &token
	}
	token := c.loadAuthToken()
	if token == nil {
		return nil
	}
	c.lastToken = token
	res := *token
	return &res
}

func (c *RestClient) loadAuthToken() *types.AuthToken {
	tokenJson, err := c.store.Get(authTokenKey)
	if err != nil {
		if err != types.NoDataFound {
			log.Warn(fmt.Sprintf("Unable to load auth token: %v", err))
		}
		return nil
	}
	var token types.AuthToken
	if err := json.Unmarshal([]byte(tokenJson), &token); err != nil {
		log.Debug(fmt.Sprintf("Persisted auth token is malformed: %v", err))
		return nil
	}
	expirationDate, err := time.Parse(expirationDateLayout, token.ExpirationDate)
	if err != nil {
		log.Debug(fmt.Sprintf("Persisted auth token has invalid expiration date %q", token.ExpirationDate))
		return nil
	}
	if !time.Now().Before(expirationDate) {
		return nil
	}
	return &token
}

// SetAuthToken replaces the credential. nil clears both the cache and the persisted copy.
// A token that cannot be serialized is dropped without changing the current state.
func (c *RestClient) SetAuthToken(token *types.AuthToken) {
	c.tokenMutex.Lock()
	defer c.tokenMutex.Unlock()
	if token == nil {
		c.lastToken = nil
		if err := c.store.Remove(authTokenKey); err != nil {
			log.Warn(fmt.Sprintf("Unable to remove persisted auth token: %v", err))
		}
		return
	}
	tokenData, err := marshalToken(token)
	if err != nil {
		log.Warn(fmt.Sprintf("Unable to serialize auth token, keeping the previous one: %v", err))
		return
	}
	value := *token
	c.lastToken = &value
	if err := c.store.Set(authTokenKey, string(tokenData)); err != nil {
		log.Warn(fmt.Sprintf("Unable to persist auth token: %v", err))
	}
}
