package core

import (
	"io/ioutil"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const deviceIdKey = "ecosystemUUID"

// IdentifierSource supplies the platform identifiers. Empty strings mean the identifier is unavailable.
type IdentifierSource interface {
	AdvertisingID() string
	VendorID() string
}

type DeviceID struct {
	Value string
	// Persist is set when Value was freshly generated and has to be stored for reuse.
	Persist bool
}

// ResolveDeviceID picks the device identifier in order: advertising id (only when it contains a letter, a zeroed
// id has none), vendor id, previously persisted id, newly generated id.
func ResolveDeviceID(advertisingID, vendorID string, persisted func() (string, bool), generate func() string) DeviceID {
	if containsLetter(advertisingID) {
		return DeviceID{Value: advertisingID}
	}
	if vendorID != "" {
		return DeviceID{Value: vendorID}
	}
	if id, ok := persisted(); ok && id != "" {
		return DeviceID{Value: id}
	}
	return DeviceID{
		Value:   generate(),
		Persist: true,
	}
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// vendorIdNamespace scopes ids derived from the host machine id to this client, the raw machine id is never sent.
var vendorIdNamespace = uuid.MustParse("3f6c2a9e-5b1d-4e8a-9c27-d41b0e7f6a53")

var machineIdPaths = []string{
	"/etc/machine-id",
	"/var/lib/dbus/machine-id",
	"/sys/class/dmi/id/product_uuid",
}

// HostIdentifierSource takes the advertising id from configuration and derives the vendor id from the host machine id.
type HostIdentifierSource struct {
	advertisingID string
	paths         []string
}

func NewHostIdentifierSource(advertisingID string) *HostIdentifierSource {
	return &HostIdentifierSource{
		advertisingID: advertisingID,
		paths:         machineIdPaths,
	}
}

func (s *HostIdentifierSource) AdvertisingID() string {
	return s.advertisingID
}

func (s *HostIdentifierSource) VendorID() string {
	for _, path := range s.paths {
		content, err := ioutil.ReadFile(path)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(content)); id != "" {
			return uuid.NewSHA1(vendorIdNamespace, []byte(id)).String()
		}
	}
	return ""
}
