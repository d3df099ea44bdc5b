package common

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//NewCutUUIDString returns uuid string that cut `-`.
func NewCutUUIDString() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

//SHA256HexString returns the hex string that encoded from SHA256 hash of source text.
func SHA256HexString(buf []byte) string {
	h := sha256.New()
	h.Write(buf)
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}

func MustGetJSONString(m interface{}) string {
	if m == nil {
		return "{}"
	}
	data, err := json.Marshal(m)
	if err != nil {
		log.Error(err)
		return "{}"
	}
	return string(data)
}
