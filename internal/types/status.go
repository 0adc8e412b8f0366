package types

// ServerStatus is the live summary published by the game server.
type ServerStatus struct {
	Host          string   `json:"host"`
	Port          int      `json:"port"`
	OnlinePlayers int      `json:"onlinePlayers"`
	MaxPlayers    int      `json:"maxPlayers"`
	SamplePlayers []string `json:"samplePlayers"`
	TotalSeen     int      `json:"totalSeen"`
}
