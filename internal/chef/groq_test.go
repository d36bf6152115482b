package chef

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		if assert.Len(t, req.Messages, 1) {
			assert.Contains(t, req.Messages[0].Content, "egg, rice")
		}
		if assert.NotNil(t, req.ResponseFormat) {
			assert.Equal(t, "json_object", req.ResponseFormat.Type)
		}

		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error":{"message":"nope"}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": content}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGroqGenerateDish(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		content string
		want    Idea
		wantErr bool
	}{
		{
			name:    "plain json",
			status:  http.StatusOK,
			content: `{"name":"Rice Egg","description":"Classic."}`,
			want:    Idea{Name: "Rice Egg", Description: "Classic."},
		},
		{
			name:    "fenced json",
			status:  http.StatusOK,
			content: "```json\n{\"name\":\"Rice Egg\",\"description\":\"Classic.\"}\n```",
			want:    Idea{Name: "Rice Egg", Description: "Classic."},
		},
		{name: "invalid json", status: http.StatusOK, content: "a poem instead", wantErr: true},
		{name: "missing name", status: http.StatusOK, content: `{"description":"x"}`, wantErr: true},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := chatServer(t, tt.status, tt.content)
			g := NewGroq("key", srv.URL+"/", "test-model")

			got, err := g.GenerateDish(context.Background(), []string{"egg", "rice"})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGroqNotConfigured(t *testing.T) {
	_, err := NewGroq("", "http://unused", "m").GenerateDish(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
