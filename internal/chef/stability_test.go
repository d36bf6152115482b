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

func TestStabilityGenerateImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Contains(t, r.FormValue("prompt"), `"Rice Egg"`)
		assert.Contains(t, r.FormValue("prompt"), "egg, rice")
		assert.Equal(t, "png", r.FormValue("output_format"))

		json.NewEncoder(w).Encode(imageResponse{Image: "iVBORw0KGgo=", FinishReason: "SUCCESS"})
	}))
	defer srv.Close()

	s := NewStability("key", srv.URL)
	got, err := s.GenerateImage(context.Background(), Idea{Name: "Rice Egg", Description: "Classic."}, []string{"egg", "rice"})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", got)
}

func TestStabilityErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"bad status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "content moderated", http.StatusForbidden)
		}},
		{"no image", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(imageResponse{FinishReason: "CONTENT_FILTERED"})
		}},
		{"garbage", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewStability("key", srv.URL).GenerateImage(context.Background(), Idea{Name: "x"}, nil)
			assert.Error(t, err)
		})
	}
}

func TestStabilityNotConfigured(t *testing.T) {
	_, err := NewStability("", "http://unused").GenerateImage(context.Background(), Idea{}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
