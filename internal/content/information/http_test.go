// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package information

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisanmanch/kisanmanch/internal/platform/ctxutil"
	"github.com/kisanmanch/kisanmanch/internal/platform/sec"
	"github.com/kisanmanch/kisanmanch/pkg/uuidv7"
)

// testRouter mounts the handler the way the server does, with an optional
// pre-authenticated role standing in for the token middleware.
func testRouter(service *Service, role sec.UserRole) http.Handler {
	router := chi.NewRouter()
	if role != "" {
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				ctx := ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{
					UserID:   uuidv7.New(),
					Username: "test-editor",
					Role:     string(role),
				})
				next.ServeHTTP(writer, request.WithContext(ctx))
			})
		})
	}
	router.Mount("/", NewHandler(service).Routes())
	return router
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	request := httptest.NewRequest(method, target, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var parsed envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &parsed))
	return recorder, parsed
}

/*
TestRoutesPublicReads verifies both read endpoints answer anonymously and
wrap their payload in the standard envelope.
*/
func TestRoutesPublicReads(t *testing.T) {
	service, _, _, _ := newTestService()
	_, err := service.CreateItem(context.Background(), CreateItemInput{
		GroupTitle: string(GroupGovernmentSchemes), Title: "PM-KISAN", Description: "d",
	})
	require.NoError(t, err)

	router := testRouter(service, "")

	recorder, body := doRequest(t, router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, body.Success)

	var groups []Group
	require.NoError(t, json.Unmarshal(body.Data, &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, GroupGovernmentSchemes, groups[0].GroupTitle)

	recorder, body = doRequest(t, router, http.MethodGet, "/feed?sort=date", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	var feed []FlatItem
	require.NoError(t, json.Unmarshal(body.Data, &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, "PM-KISAN", feed[0].Title)
}

/*
TestRoutesWriteAuthorization verifies the role gate on mutations: anonymous
is 401, a plain member is 403, an editor passes.
*/
func TestRoutesWriteAuthorization(t *testing.T) {
	payload := `{"groupTitle":"newsUpdates","title":"Rally announced","description":"March gathering."}`

	t.Run("anonymous rejected", func(t *testing.T) {
		service, _, _, _ := newTestService()
		recorder, body := doRequest(t, testRouter(service, ""), http.MethodPost, "/", payload)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, body.Success)
		assert.Equal(t, "UNAUTHORIZED", body.Code)
	})

	t.Run("member rejected", func(t *testing.T) {
		service, _, _, _ := newTestService()
		recorder, body := doRequest(t, testRouter(service, sec.RoleMember), http.MethodPost, "/", payload)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Equal(t, "FORBIDDEN", body.Code)
	})

	t.Run("editor allowed", func(t *testing.T) {
		service, _, _, _ := newTestService()
		recorder, body := doRequest(t, testRouter(service, sec.RoleEditor), http.MethodPost, "/", payload)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.True(t, body.Success)

		var group Group
		require.NoError(t, json.Unmarshal(body.Data, &group))
		assert.Equal(t, GroupNewsUpdates, group.GroupTitle)
		require.Len(t, group.Items, 1)
	})
}

/*
TestRoutesErrorEnvelopes verifies the error wire shape for a validation
failure and for the two not-found variants.
*/
func TestRoutesErrorEnvelopes(t *testing.T) {
	service, _, _, _ := newTestService()
	router := testRouter(service, sec.RoleEditor)

	t.Run("validation error", func(t *testing.T) {
		recorder, body := doRequest(t, router, http.MethodPost, "/",
			`{"groupTitle":"marketPrices","title":"t","description":"d"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
	})

	t.Run("group not found", func(t *testing.T) {
		recorder, body := doRequest(t, router, http.MethodDelete,
			"/newsUpdates/"+uuidv7.New(), "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "Information group not found", body.Error)
	})

	t.Run("item not found", func(t *testing.T) {
		_, err := service.CreateItem(context.Background(), CreateItemInput{
			GroupTitle: string(GroupNewsUpdates), Title: "Rally", Description: "d",
		})
		require.NoError(t, err)

		recorder, body := doRequest(t, router, http.MethodDelete,
			"/newsUpdates/"+uuidv7.New(), "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "Information item not found", body.Error)
	})
}

/*
TestRoutesUpdateReturnsItem verifies a JSON partial update responds with the
merged item, not the whole group.
*/
func TestRoutesUpdateReturnsItem(t *testing.T) {
	service, _, _, _ := newTestService()
	router := testRouter(service, sec.RoleEditor)

	group, err := service.CreateItem(context.Background(), CreateItemInput{
		GroupTitle: string(GroupGovernmentSchemes), Title: "PM-KISAN", Description: "d",
	})
	require.NoError(t, err)
	itemID := group.Items[0].ID

	recorder, body := doRequest(t, router, http.MethodPut,
		"/governmentSchemes/"+itemID, `{"engagementMetric":420}`)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var item Item
	require.NoError(t, json.Unmarshal(body.Data, &item))
	assert.Equal(t, itemID, item.ID)
	assert.Equal(t, 420, item.EngagementMetric)
	assert.Equal(t, "PM-KISAN", item.Title)
}
