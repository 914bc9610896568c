package repository

import "encoding/json"

// jsonList encodes a string list the same way the json serializer on the
// model does, for map based updates that bypass the serializer.
func jsonList(items []string) string {
	if items == nil {
		return "null"
	}
	b, _ := json.Marshal(items)
	return string(b)
}
