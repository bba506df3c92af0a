package files

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// detectMimeType trusts the client's declared type unless it is missing or generic,
// in which case the type is sniffed from the payload.
func detectMimeType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != defaultMimeType {
		return declared
	}
	if len(data) == 0 {
		return defaultMimeType
	}
	return mimetype.Detect(data).String()
}
