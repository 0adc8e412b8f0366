package endpoint_test

import (
	"net/url"
	"testing"

	"github.com/robalyx/modlog/internal/endpoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()

	u, err := url.Parse(raw)
	require.NoError(t, err)

	return u
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		runtime string
		build   string
		page    string
		want    string
	}{
		{
			name:    "runtime value wins",
			runtime: "https://api.example.com/",
			build:   "https://build.example.com",
			page:    "https://site.example.com/bans",
			want:    "https://api.example.com",
		},
		{
			name:  "build override beats heuristic",
			build: "https://build.example.com/",
			page:  "http://localhost:5173/",
			want:  "https://build.example.com",
		},
		{
			name: "localhost uses dev port",
			page: "http://localhost:5173/mutes",
			want: "http://localhost:4000",
		},
		{
			name: "loopback uses dev port",
			page: "http://127.0.0.1/",
			want: "http://127.0.0.1:4000",
		},
		{
			name: "private 192.168 range uses dev port",
			page: "http://192.168.1.50/search",
			want: "http://192.168.1.50:4000",
		},
		{
			name: "private 10 range uses dev port even over https",
			page: "https://10.0.0.7/",
			want: "http://10.0.0.7:4000",
		},
		{
			name: "public https host is preserved",
			page: "https://mc.example.uz:8443/kicks",
			want: "https://mc.example.uz",
		},
		{
			name: "other schemes fall back to http",
			page: "ftp://mc.example.uz/",
			want: "http://mc.example.uz",
		},
		{
			name: "172 range is not treated as local",
			page: "http://172.16.0.4/",
			want: "http://172.16.0.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := endpoint.Resolve(endpoint.Sources{
				Runtime: tt.runtime,
				Build:   tt.build,
				Page:    mustParse(t, tt.page),
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveWithoutPage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "http://localhost:4000", endpoint.Resolve(endpoint.Sources{}))
	assert.Equal(t, "http://localhost:8080", endpoint.Resolve(endpoint.Sources{DevPort: 8080}))
}

func TestResolveDetailed(t *testing.T) {
	t.Parallel()

	res := endpoint.ResolveDetailed(endpoint.Sources{
		Runtime: "https://api.example.com",
		Page:    mustParse(t, "https://site.example.com"),
	})
	assert.Equal(t, "https://api.example.com", res.Base)
	assert.False(t, res.BuildOverride)

	res = endpoint.ResolveDetailed(endpoint.Sources{Build: "https://build.example.com"})
	assert.Equal(t, "https://build.example.com", res.Base)
	assert.True(t, res.BuildOverride)
}

func TestImageURL(t *testing.T) {
	t.Parallel()

	base := "https://api.example.com"

	assert.Empty(t, endpoint.ImageURL(base, ""))
	assert.Equal(t, "https://cdn.example.com/a.png", endpoint.ImageURL(base, "https://cdn.example.com/a.png"))
	assert.Equal(t, "http://cdn.example.com/a.png", endpoint.ImageURL(base, "http://cdn.example.com/a.png"))
	assert.Equal(t, "https://api.example.com/uploads/a.png", endpoint.ImageURL(base, "/uploads/a.png"))
}
