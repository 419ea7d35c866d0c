// Package auth implements LMv1 request signing.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"
)

// Sign computes the LMv1 authorization token for one request attempt.
// The signature is the Base64 of the lowercase hex HMAC-SHA256 digest of
// method + epochMillis + body + path, keyed by the access key. Body is the
// empty string for non-body-bearing methods. Pure function of its inputs.
func Sign(method, path string, body []byte, epochMillis int64, accessID, accessKey string) string {
	payload := fmt.Sprintf("%s%d%s%s", method, epochMillis, body, path)

	mac := hmac.New(sha256.New, []byte(accessKey))
	mac.Write([]byte(payload))

	digest := hex.EncodeToString(mac.Sum(nil))
	signature := base64.StdEncoding.EncodeToString([]byte(digest))

	return fmt.Sprintf("LMv1 %s:%s:%d", accessID, signature, epochMillis)
}

// Token signs with the wall clock at call time. Each retry of a request must
// call this again so the timestamp stays inside the server's acceptance
// window.
func Token(method, path string, body []byte, accessID, accessKey string) string {
	return Sign(method, path, body, time.Now().UnixMilli(), accessID, accessKey)
}
