package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hubgrip/internal/domain"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientsAreMemoizedPerToken(t *testing.T) {
	t.Parallel()

	a := ForToken("https://api.test.example", "token-a")
	b := ForToken("https://api.test.example", "token-a")
	c := ForToken("https://api.test.example", "token-b")
	d := ForToken("https://other.test.example", "token-a")

	assert.Same(t, a, b, "same base URL and token means the same client")
	assert.NotSame(t, a, c, "a different token gets its own client")
	assert.NotSame(t, a, d, "a different base URL gets its own client")
}

func TestClientSendsAuthHeader(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"id": 1}`)
	})

	client := ForToken(srv.URL, "secret-token")
	var out struct {
		ID int `json:"id"`
	}
	require.NoError(t, client.Get(context.Background(), "users/1", &out))
	assert.Equal(t, 1, out.ID)
}

func TestAnonymousClientOmitsAuthHeader(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{}`)
	})

	client := ForToken(srv.URL, "")
	require.NoError(t, client.Get(context.Background(), "boot", &struct{}{}))
}

func TestMissingAndForbiddenBothMeanNotFound(t *testing.T) {
	t.Parallel()

	for _, code := range []int{http.StatusNotFound, http.StatusUnauthorized} {
		code := code
		t.Run(fmt.Sprint(code), func(t *testing.T) {
			t.Parallel()
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
			})

			client := ForToken(srv.URL, "tok")
			err := client.Get(context.Background(), "teams/1", &struct{}{})
			require.Error(t, err)
			assert.True(t, IsNotFound(err), "status %d should read as not-found", code)
		})
	}
}

func TestOtherErrorsCarryStatusAndMessage(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "name already taken", http.StatusBadRequest)
	})

	client := ForToken(srv.URL, "tok")
	err := client.Patch(context.Background(), "collections/1", map[string]any{"name": "x"}, nil)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
	assert.Equal(t, "name already taken", statusErr.Message)
}

func TestFollowPagesConcatenatesAllPages(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/teams/1/invited", r.URL.Path)
		switch r.URL.Query().Get("lastOrderValue") {
		case "":
			fmt.Fprint(w, `{"items": [{"id": 1}, {"id": 2}], "hasMore": true, "lastOrderValue": "2"}`)
		case "2":
			fmt.Fprint(w, `{"items": [{"id": 3}], "hasMore": false}`)
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("lastOrderValue"))
		}
	})

	client := ForToken(srv.URL, "tok")
	users, err := FollowPages[domain.User](context.Background(), client, "teams/1/invited")
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, 3, users[2].ID)
}

func TestFollowPagesAppendsCursorToExistingQuery(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "all", r.URL.Query().Get("kind"), "existing query params survive pagination")
		if r.URL.Query().Get("lastOrderValue") == "" {
			fmt.Fprint(w, `{"items": [{"id": 1}], "hasMore": true, "lastOrderValue": "a b"}`)
			return
		}
		require.Equal(t, "a b", r.URL.Query().Get("lastOrderValue"), "cursor round-trips escaped")
		fmt.Fprint(w, `{"items": [], "hasMore": false}`)
	})

	client := ForToken(srv.URL, "tok")
	users, err := FollowPages[domain.User](context.Background(), client, "teams/1/invited?kind=all")
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSiteSearchEscapesQuery(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "cats & dogs", r.URL.Query().Get("q"))
		fmt.Fprint(w, `{"team": [{"id": 7, "name": "Cats"}]}`)
	})

	client := ForToken(srv.URL, "tok")
	resp, err := client.SiteSearch(context.Background(), "cats & dogs")
	require.NoError(t, err)
	require.Len(t, resp.Teams, 1)
	assert.Equal(t, "Cats", resp.Teams[0].Name)
}

func TestCurrentUserComesFromBoot(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/boot", r.URL.Path)
		fmt.Fprint(w, `{"user": {"id": 9, "login": "me"}}`)
	})

	client := ForToken(srv.URL, "tok")
	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "me", user.Login)
}
