package acrcloud

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

// SignatureVersion is the console signing scheme version sent with every
// signed request.
const SignatureVersion = "1"

// Sign computes the console API request signature: the HMAC-SHA1 digest of
// message keyed by secret, base64-encoded with the standard alphabet and
// padding. The server independently recomputes the signature from the
// request headers and rejects any mismatch, so the output must be
// byte-exact for identical inputs.
func Sign(secret []byte, message string) string {
	mac := hmac.New(sha1.New, secret)
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// StringToSign builds the canonical message covered by a request
// signature. Field order and the single newline separator are fixed by
// the server contract; any deviation invalidates the signature.
func StringToSign(method, uri, accessKey, signatureVersion, timestamp string) string {
	return strings.Join([]string{method, uri, accessKey, signatureVersion, timestamp}, "\n")
}

// formatTimestamp renders t as decimal seconds since the Unix epoch with
// up to microsecond precision, trailing zeros trimmed. The same string is
// both signed and sent in the timestamp header, so the exact rendering
// only has to be internally consistent.
func formatTimestamp(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixMicro())/1e6, 'f', -1, 64)
}
