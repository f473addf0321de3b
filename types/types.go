package types

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

type AuthToken struct {
	Token          string `json:"token"`
	ExpirationDate string `json:"expiration_date"`
}

type SignInType string

const (
	SignInTypeJwt       SignInType = "jwt"
	SignInTypeWhitelist SignInType = "whitelist"
)

type SignInData struct {
	Jwt           *string    `json:"jwt,omitempty"`
	UserId        string     `json:"user_id"`
	AppId         string     `json:"app_id"`
	DeviceId      string     `json:"device_id"`
	PublicAddress string     `json:"public_address"`
	SignInType    SignInType `json:"sign_in_type"`
}

type ContentType string

const (
	ContentTypeJson ContentType = "application/json"
	ContentTypeForm ContentType = "application/x-www-form-urlencoded"
	ContentTypeText ContentType = "text/plain"
)

// RequestOptions holds the optional parts of a built request. Zero ContentType means json.
type RequestOptions struct {
	ContentType ContentType
	Body        []byte
	Parameters  map[string]string
}

// ErrorCode keeps the textual form of a service error code, which the API sends either as a string or a number.
type ErrorCode string

func (c *ErrorCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return errors.New("error code is null")
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ErrorCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Errorf("invalid error code %s", string(data))
	}
	*c = ErrorCode(n.String())
	return nil
}

type ResponseError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type Offer struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	OfferType   string `json:"offer_type"`
}

type OfferList struct {
	Offers []Offer `json:"offers"`
}

var NoDataFound = errors.New("no data found")
