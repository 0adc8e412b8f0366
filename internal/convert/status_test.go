package convert_test

import (
	"testing"

	"github.com/robalyx/modlog/internal/convert"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestStatus(t *testing.T) {
	t.Parallel()

	status := convert.Status(gjson.Parse(`{
		"host": "mc.example.uz",
		"port": 25565,
		"onlinePlayers": 12,
		"maxPlayers": 100,
		"samplePlayers": ["Steve", 7, true],
		"totalSeen": 4031
	}`))

	assert.Equal(t, "mc.example.uz", status.Host)
	assert.Equal(t, 25565, status.Port)
	assert.Equal(t, 12, status.OnlinePlayers)
	assert.Equal(t, 100, status.MaxPlayers)
	assert.Equal(t, []string{"Steve", "7", "true"}, status.SamplePlayers)
	assert.Equal(t, 4031, status.TotalSeen)
}

func TestStatusDefaults(t *testing.T) {
	t.Parallel()

	status := convert.Status(gjson.Parse(`{"samplePlayers": "Steve"}`))

	assert.Empty(t, status.Host)
	assert.Zero(t, status.Port)
	assert.Zero(t, status.OnlinePlayers)
	assert.Zero(t, status.MaxPlayers)
	assert.NotNil(t, status.SamplePlayers)
	assert.Empty(t, status.SamplePlayers)
	assert.Zero(t, status.TotalSeen)
}
