package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/idena-network/ecosystem-client/types"
	log "github.com/inconshreveable/log15"
)

const (
	signInPath = "v1/users"
	offersPath = "v1/offers"
)

// SignIn sends the sign-in payload and stores the returned token.
func (c *RestClient) SignIn(ctx context.Context) (*types.AuthToken, error) {
	body, err := json.Marshal(c.SignInData())
	if err != nil {
		return nil, newNetError(KindRequestBuild, err)
	}
	request, err := c.BuildRequest(ctx, signInPath, http.MethodPost, types.RequestOptions{
		Body: body,
	})
	if err != nil {
		return nil, err
	}
	data, err := c.DataRequest(request)
	if err != nil {
		return nil, err
	}
	token, err := DecodeResponse[types.AuthToken](data)
	if err != nil {
		return nil, err
	}
	if token.Token == "" || token.ExpirationDate == "" {
		log.Error(fmt.Sprintf("sign in response has no token: %v", string(data)))
		return nil, newNetError(KindResponseParseError, nil)
	}
	c.SetAuthToken(&token)
	log.Debug(fmt.Sprintf("Signed in, token expires at %v", token.ExpirationDate))
	return &token, nil
}

func (c *RestClient) SignOut() {
	c.SetAuthToken(nil)
}

func (c *RestClient) Offers(ctx context.Context) (types.OfferList, error) {
	request, err := c.BuildRequest(ctx, offersPath, http.MethodGet, types.RequestOptions{})
	if err != nil {
		return types.OfferList{}, err
	}
	data, err := c.DataRequest(request)
	if err != nil {
		return types.OfferList{}, err
	}
	return DecodeResponse[types.OfferList](data)
}

// CreateOrder expects no payload in the response.
func (c *RestClient) CreateOrder(ctx context.Context, offerId string) error {
	request, err := c.BuildRequest(ctx, offersPath+"/"+url.PathEscape(offerId)+"/orders", http.MethodPost, types.RequestOptions{})
	if err != nil {
		return err
	}
	return c.Request(request)
}
