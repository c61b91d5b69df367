package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/finchley/plume/middleware"
	"github.com/finchley/plume/models"
	"github.com/finchley/plume/store"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestHandleAggregateError_Taxonomy(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"post not found", store.ErrPostNotFound, http.StatusNotFound},
		{"comment not found", models.ErrCommentNotFound, http.StatusNotFound},
		{"reply not found", models.ErrReplyNotFound, http.StatusNotFound},
		{"reaction not found", models.ErrReactionNotFound, http.StatusNotFound},
		{"invalid reaction type", models.ErrInvalidReactionType, http.StatusBadRequest},
		{"not reaction owner", models.ErrNotReactionOwner, http.StatusUnauthorized},
		{"stale aggregate", store.ErrStaleAggregate, http.StatusInternalServerError},
		{"uncategorized", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)

			handleAggregateError(ctx, tc.err, "something failed")

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.name == "uncategorized" {
				// Internal detail must not leak to the client.
				assert.NotContains(t, w.Body.String(), "disk on fire")
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	_, ok := getUserID(ctx)
	assert.False(t, ok)

	ctx.Set(middleware.ContextUserIDKey, uint(5))
	id, ok := getUserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint(5), id)

	ctx.Set(middleware.ContextUserIDKey, "not-a-number")
	_, ok = getUserID(ctx)
	assert.False(t, ok)
}
