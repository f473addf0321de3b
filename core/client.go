package core

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/idena-network/ecosystem-client/db"
	"github.com/idena-network/ecosystem-client/types"
	log "github.com/inconshreveable/log15"
)

const unknownAppId = "unknown"

type Configuration struct {
	BaseURL       string
	UserId        string
	PublicAddress string
	Jwt           *string
	AppId         string
}

type RestClient struct {
	configuration Configuration
	store         db.Store
	identifiers   IdentifierSource
	httpClient    *http.Client

	tokenMutex sync.Mutex
	lastToken  *types.AuthToken

	signInDataOnce sync.Once
	signInData     types.SignInData
}

func NewRestClient(configuration Configuration, store db.Store, identifiers IdentifierSource) *RestClient {
	return &RestClient{
		configuration: configuration,
		store:         store,
		identifiers:   identifiers,
		httpClient:    &http.Client{},
	}
}

// SignInData is computed on first use and never changes afterwards.
func (c *RestClient) SignInData() types.SignInData {
	c.signInDataOnce.Do(func() {
		c.signInData = c.buildSignInData()
	})
	return c.signInData
}

func (c *RestClient) buildSignInData() types.SignInData {
	appId := c.configuration.AppId
	if appId == "" {
		appId = unknownAppId
	}
	signInType := types.SignInTypeWhitelist
	if c.configuration.Jwt != nil {
		signInType = types.SignInTypeJwt
	}
	return types.SignInData{
		Jwt:           c.configuration.Jwt,
		UserId:        c.configuration.UserId,
		AppId:         appId,
		DeviceId:      c.deviceId(),
		PublicAddress: c.configuration.PublicAddress,
		SignInType:    signInType,
	}
}

func (c *RestClient) deviceId() string {
	persisted := func() (string, bool) {
		id, err := c.store.Get(deviceIdKey)
		if err != nil {
			if err != types.NoDataFound {
				log.Warn(fmt.Sprintf("Unable to load device id: %v", err))
			}
			return "", false
		}
		return id, true
	}
	deviceId := ResolveDeviceID(c.identifiers.AdvertisingID(), c.identifiers.VendorID(), persisted, uuid.NewString)
	if deviceId.Persist {
		if err := c.store.Set(deviceIdKey, deviceId.Value); err != nil {
			log.Warn(fmt.Sprintf("Unable to persist device id: %v", err))
		}
	}
	return deviceId.Value
}
