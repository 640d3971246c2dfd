package mqtt

import "fmt"

// Topic prefixes for the lumesync state mirror.
//
// State topics use the scheme: lumesync/{server}/lights/{device}/state
const (
	// TopicPrefix is the base for all lumesync topics.
	TopicPrefix = "lumesync"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "lumesync/system"
)

// Topics provides builders for lumesync MQTT topics.
// Using these helpers keeps topic naming consistent across the codebase.
//
//	topics := mqtt.Topics{}
//	stateTopic := topics.LightState("loft", "d073d5123456")
//	// Returns: "lumesync/loft/lights/d073d5123456/state"
type Topics struct{}

// LightState returns the retained state topic for one light.
//
// Example: lumesync/loft/lights/d073d5123456/state
func (Topics) LightState(serverID, deviceID string) string {
	return fmt.Sprintf("%s/%s/lights/%s/state", TopicPrefix, serverID, deviceID)
}

// SystemStatus returns the mirror's status topic (online/offline/LWT).
//
// Example: lumesync/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllLightStates returns a pattern matching every light state topic for
// one server.
//
// Pattern: lumesync/loft/lights/+/state
func (Topics) AllLightStates(serverID string) string {
	return fmt.Sprintf("%s/%s/lights/+/state", TopicPrefix, serverID)
}
