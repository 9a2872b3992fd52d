package display

import (
	"encoding/base64"
	"strings"
)

// DataURI embeds data as a base64 data URI. An empty mimetype means image/png.
func DataURI(data []byte, mimetype string) string {
	if mimetype == "" {
		mimetype = "image/png"
	}
	var sb strings.Builder
	sb.Grow(len("data:;base64,") + len(mimetype) + base64.StdEncoding.EncodedLen(len(data)))
	sb.WriteString("data:")
	sb.WriteString(mimetype)
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(data))
	return sb.String()
}
