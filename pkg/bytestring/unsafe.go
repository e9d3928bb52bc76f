package bytestring

import "unsafe"

// stringBytes aliases the bytes of s without copying. The result must only
// be read.
func stringBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
