package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// ComputeVersion returns a short deterministic fingerprint of the machine
// configuration: the first 8 bytes of SHA256 over its JSON encoding. The ID
// does not take part, so identical machines share a version.
func ComputeVersion(config MachineConfig) string {
	config.ID = ""
	data, err := json.Marshal(config)
	if err != nil {
		return "invalid"
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}
