package architecture_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/releasegate/releasegate/internal/adapters/outbound/architecture"
	"github.com/releasegate/releasegate/internal/domain"
)

func TestModelElements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/visions/TCK-1/elements", r.URL.Path)
		_, _ = w.Write([]byte(`{"elements": [
			{"name": "payment-service", "kind": "ArchiMate:ApplicationComponent", "stereotype": "changed"},
			{"name": "order-db", "kind": "artifact", "stereotype": "exotic"}
		]}`))
	}))
	defer srv.Close()

	client := architecture.New(domain.Endpoint{BaseURL: srv.URL}, time.Second)
	elements, err := client.ModelElements(context.Background(), "TCK-1")
	require.NoError(t, err)
	require.Len(t, elements, 2)

	assert.Equal(t, domain.StereotypeChanged, elements[0].Stereotype)
	assert.True(t, elements[0].IsApplicationComponent())
	assert.Equal(t, domain.StereotypeUndefined, elements[1].Stereotype, "unknown stereotypes map to UNDEFINED")
	assert.False(t, elements[1].IsApplicationComponent())
}

func TestApprovedComponents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/visions/TCK-1/approved", r.URL.Path)
		_, _ = w.Write([]byte(`{"approved": ["payment-service", "order-service"]}`))
	}))
	defer srv.Close()

	client := architecture.New(domain.Endpoint{BaseURL: srv.URL}, time.Second)
	approved, err := client.ApprovedComponents(context.Background(), "TCK-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"payment-service", "order-service"}, approved)
}

func TestApprovedComponents_NoVision(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := architecture.New(domain.Endpoint{BaseURL: srv.URL}, time.Second)
	_, err := client.ApprovedComponents(context.Background(), "TCK-9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
