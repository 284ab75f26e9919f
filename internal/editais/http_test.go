// Copyright (c) 2026 Atimus. All rights reserved.

package editais_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atimus/edital-api/internal/editais"
	"github.com/atimus/edital-api/internal/platform/ctxutil"
	"github.com/atimus/edital-api/internal/platform/sec"
)

// newCatalogRouter mounts the handler the way the server does: public reads
// at /editais, mutations under the /admin tree.
func newCatalogRouter(store *fakeStore) chi.Router {
	handler := editais.NewHandler(newTestService(store))

	router := chi.NewRouter()
	router.Mount("/editais", handler.Routes())

	adminRouter := chi.NewRouter()
	adminRouter.Mount("/editais", handler.AdminRoutes())
	router.Mount("/admin", adminRouter)

	return router
}

// asAdmin attaches verified admin claims, as the authentication middleware
// would after a valid bearer token.
func asAdmin(request *http.Request) *http.Request {
	claims := &sec.AdminClaims{Role: sec.RoleAdmin}
	return request.WithContext(ctxutil.WithAdmin(request.Context(), claims))
}

/*
TestRoutes_AdminMutationPaths checks the wire contract of the catalog: the
admin frontend publishes against POST /admin/editais, the public pages read
from GET /editais, and no mutation is reachable on the public path.
*/
func TestRoutes_AdminMutationPaths(t *testing.T) {
	router := newCatalogRouter(&fakeStore{})
	body := `{"titulo": "Edital de Crédito Rural 2026"}`

	// Public read surface.
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/editais", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	// Mutations are NOT registered on the public path.
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/editais", strings.NewReader(body)))
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)

	// The admin path exists and is gated.
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/admin/editais", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// With admin claims the same path publishes.
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, asAdmin(httptest.NewRequest(http.MethodPost, "/admin/editais", strings.NewReader(body))))
	assert.Equal(t, http.StatusCreated, recorder.Code)
}

/*
TestRoutes_AdminUpdateAndDelete checks the id-scoped mutation paths under
/admin/editais.
*/
func TestRoutes_AdminUpdateAndDelete(t *testing.T) {
	store := &fakeStore{}
	router := newCatalogRouter(store)

	created, err := newTestService(store).Create(context.Background(), editais.EditalInput{
		Titulo: "Edital de Irrigação",
	})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, asAdmin(httptest.NewRequest(
		http.MethodPut, "/admin/editais/"+created.ID,
		strings.NewReader(`{"titulo": "Edital de Irrigação e Drenagem"}`))))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, asAdmin(httptest.NewRequest(
		http.MethodDelete, "/admin/editais/"+created.ID, nil)))
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
