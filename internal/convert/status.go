package convert

import (
	"github.com/robalyx/modlog/internal/types"
	"github.com/tidwall/gjson"
)

// Status maps the raw server status object.
func Status(raw gjson.Result) types.ServerStatus {
	return types.ServerStatus{
		Host:          String(raw.Get("host")),
		Port:          int(Int64(raw.Get("port"))),
		OnlinePlayers: int(Int64(raw.Get("onlinePlayers"))),
		MaxPlayers:    int(Int64(raw.Get("maxPlayers"))),
		SamplePlayers: Strings(raw.Get("samplePlayers")),
		TotalSeen:     int(Int64(raw.Get("totalSeen"))),
	}
}

// Strings coerces an array to a slice of strings. Anything that is not an
// array becomes an empty slice; each element is stringified.
func Strings(v gjson.Result) []string {
	if !v.IsArray() {
		return []string{}
	}

	items := v.Array()
	out := make([]string, 0, len(items))

	for _, item := range items {
		if item.Type == gjson.JSON {
			out = append(out, item.Raw)
			continue
		}

		out = append(out, item.String())
	}

	return out
}
