package httpsrc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/lyricsbox/lyricsbox/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestFetch_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			http.Error(w, "bad accept", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"lyricsDatabase":{"songs":{"勇悍行":"la"}},"cheatCodes":{}}`))
	}))
	defer srv.Close()

	doc, err := NewClient(srv.URL+"/lyrics.json", 0, 0).Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"勇悍行"}, doc.LyricsDatabase.Titles)
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, 0).Fetch(context.Background())
	require.ErrorIs(t, err, apperrors.ErrDataLoad)
	var le *apperrors.LoadError
	require.ErrorAs(t, err, &le)
	require.Equal(t, apperrors.LoadStatus, le.Kind)
	require.Equal(t, http.StatusNotFound, le.Status)
	require.Contains(t, err.Error(), "404")
}

func TestFetch_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, 0).Fetch(context.Background())
	var le *apperrors.LoadError
	require.ErrorAs(t, err, &le)
	require.Equal(t, apperrors.LoadParse, le.Kind)
}

func TestFetch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second, 0).Fetch(context.Background())
	var le *apperrors.LoadError
	require.ErrorAs(t, err, &le)
	require.Equal(t, apperrors.LoadFetch, le.Kind)
}

func TestFetch_LimiterPacesAttempts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, time.Hour)
	_, err := c.Fetch(context.Background())
	require.Error(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Fetch(ctx)
	require.Error(t, err)
	require.Equal(t, int32(1), hits.Load(), "second attempt must wait for the limiter")
}
