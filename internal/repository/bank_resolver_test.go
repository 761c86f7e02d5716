package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	xhttp "Tickfunds/pkg/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIFSCResolverLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/SBIN0001234", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"BANK":"State Bank of India","BRANCH":"Fort"}`))
	}))
	defer srv.Close()

	r := NewIFSCResolver(xhttp.NewClient(xhttp.WithTimeout(time.Second)), srv.URL+"/", nil)
	bank, branch, err := r.Resolve(context.Background(), "sbin0001234")
	require.NoError(t, err)
	assert.Equal(t, "State Bank of India", bank)
	assert.Equal(t, "Fort", branch)
}

func TestIFSCResolverFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	for name, r := range map[string]*IFSCResolver{
		"unconfigured": NewIFSCResolver(nil, "", nil),
		"not found":    NewIFSCResolver(xhttp.NewClient(), srv.URL, nil),
	} {
		t.Run(name, func(t *testing.T) {
			bank, branch, err := r.Resolve(context.Background(), "HDFC0000001")
			require.NoError(t, err)
			assert.Equal(t, FallbackBankName, bank)
			assert.Equal(t, FallbackBranchName, branch)
		})
	}
}

func TestIFSCResolverCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewIFSCResolver(nil, "", nil).Resolve(ctx, "HDFC0000001")
	assert.ErrorIs(t, err, context.Canceled)
}
