package web

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistFS(t *testing.T) {
	index, err := fs.ReadFile(DistFS(), "index.html")
	require.NoError(t, err)
	assert.Contains(t, string(index), `id="`+MountID+`"`)
	assert.Contains(t, string(index), "/app.js")
	assert.Contains(t, string(index), "/style.css")

	for _, name := range []string{"app.js", "style.css", "fonts/fonts.css"} {
		_, err := fs.Stat(DistFS(), name)
		assert.NoError(t, err, name)
	}
}

func TestHandler(t *testing.T) {
	tests := []struct {
		path     string
		contains string
	}{
		{"/", `id="app"`},
		{"/style.css", "--accent"},
		{"/fonts/fonts.css", "Noto Serif SC"},
		{"/history/123", `id="app"`},
		{"/fonts/", `id="app"`},
		{"/fonts", `id="app"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
			assert.NotContains(t, w.Body.String(), `href="fonts.css"`)
		})
	}
}
