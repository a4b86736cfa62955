package handlers_test

import (
	"net/http"
	"testing"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/handlers"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/mocks"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLikeHandler(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		mockSetup      func(s *mocks.LikeService)
		expectedStatus int
	}{
		{
			name:   "Лайк",
			method: http.MethodPost,
			mockSetup: func(s *mocks.LikeService) {
				s.On("Like", mock.Anything, testPrincipal, int64(7)).Return(&models.Like{ID: 1, UserID: 1, PostID: 7}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "Повторный лайк",
			method: http.MethodPost,
			mockSetup: func(s *mocks.LikeService) {
				s.On("Like", mock.Anything, testPrincipal, int64(7)).Return(nil, services.ErrAlreadyLiked).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Снятие отсутствующего лайка",
			method: http.MethodDelete,
			mockSetup: func(s *mocks.LikeService) {
				s.On("Unlike", mock.Anything, testPrincipal, int64(7)).Return(services.ErrLikeNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := new(mocks.LikeService)
			tt.mockSetup(s)
			h := handlers.NewLikeHandler(s)
			router := newRouter(testPrincipal, func(r chi.Router) {
				r.Post("/likes/{postId}", h.Like)
				r.Delete("/likes/{postId}", h.Unlike)
			})

			rr := doJSON(t, router, tt.method, "/likes/7", "")
			require.Equal(t, tt.expectedStatus, rr.Code)
			s.AssertExpectations(t)
		})
	}
}

func TestFollowHandler(t *testing.T) {
	s := new(mocks.FollowService)
	s.On("Follow", mock.Anything, testPrincipal, int64(1)).Return(nil, services.ErrSelfFollow).Once()
	s.On("Followers", mock.Anything, int64(2)).Return([]models.User{{ID: 1, Username: "alice"}}, nil).Once()
	s.On("Following", mock.Anything, int64(2)).Return([]models.User{}, nil).Once()
	s.On("Unfollow", mock.Anything, testPrincipal, int64(2)).Return(services.ErrNotFollowing).Once()

	h := handlers.NewFollowHandler(s)
	router := newRouter(testPrincipal, func(r chi.Router) {
		r.Post("/follows/{userId}", h.Follow)
		r.Delete("/follows/{userId}", h.Unfollow)
		r.Get("/follows/{userId}/followers", h.Followers)
		r.Get("/follows/{userId}/following", h.Following)
	})

	self := doJSON(t, router, http.MethodPost, "/follows/1", "")
	require.Equal(t, http.StatusBadRequest, self.Code)
	assert.Equal(t, "BAD_USER_INPUT", decodeError(t, self).Code)

	followers := doJSON(t, router, http.MethodGet, "/follows/2/followers", "")
	require.Equal(t, http.StatusOK, followers.Code)
	assert.Contains(t, followers.Body.String(), `"username":"alice"`)

	following := doJSON(t, router, http.MethodGet, "/follows/2/following", "")
	require.Equal(t, http.StatusOK, following.Code)
	assert.JSONEq(t, `[]`, following.Body.String())

	unfollow := doJSON(t, router, http.MethodDelete, "/follows/2", "")
	require.Equal(t, http.StatusNotFound, unfollow.Code)

	s.AssertExpectations(t)
}

func TestCommentHandler(t *testing.T) {
	s := new(mocks.CommentService)
	s.On("Create", mock.Anything, testPrincipal, int64(3), "nice").Return(&models.Comment{ID: 1, PostID: 3, Content: "nice"}, nil).Once()
	s.On("ListByPost", mock.Anything, int64(3)).Return([]models.Comment{{ID: 1}}, nil).Once()
	s.On("Update", mock.Anything, testPrincipal, int64(1), "").Return(nil, services.ErrEmptyComment).Once()
	s.On("Delete", mock.Anything, testPrincipal, int64(1)).Return(services.ErrForbidden).Once()
	s.On("Get", mock.Anything, int64(9)).Return(nil, services.ErrCommentNotFound).Once()

	h := handlers.NewCommentHandler(s)
	router := newRouter(testPrincipal, func(r chi.Router) {
		r.Get("/comments/post/{postId}", h.ListByPost)
		r.Post("/comments/post/{postId}", h.Create)
		r.Get("/comments/{id}", h.Get)
		r.Put("/comments/{id}", h.Update)
		r.Delete("/comments/{id}", h.Delete)
	})

	created := doJSON(t, router, http.MethodPost, "/comments/post/3", `{"content":"nice"}`)
	require.Equal(t, http.StatusCreated, created.Code)

	list := doJSON(t, router, http.MethodGet, "/comments/post/3", "")
	require.Equal(t, http.StatusOK, list.Code)

	updated := doJSON(t, router, http.MethodPut, "/comments/1", `{"content":""}`)
	require.Equal(t, http.StatusBadRequest, updated.Code)

	deleted := doJSON(t, router, http.MethodDelete, "/comments/1", "")
	require.Equal(t, http.StatusForbidden, deleted.Code)

	missing := doJSON(t, router, http.MethodGet, "/comments/9", "")
	require.Equal(t, http.StatusNotFound, missing.Code)

	badBody := doJSON(t, router, http.MethodPost, "/comments/post/3", `{"content":`)
	require.Equal(t, http.StatusBadRequest, badBody.Code)

	s.AssertExpectations(t)
}

func TestUserHandler(t *testing.T) {
	s := new(mocks.UserService)
	s.On("Me", mock.Anything, testPrincipal).Return(&models.UserProfile{User: models.User{ID: 1, Username: "alice"}}, nil).Once()
	s.On("GetProfile", mock.Anything, int64(404)).Return(nil, services.ErrUserNotFound).Once()

	h := handlers.NewUserHandler(s)
	router := newRouter(testPrincipal, func(r chi.Router) {
		r.Get("/users/me", h.Me)
		r.Get("/users/{id}", h.GetProfile)
	})

	me := doJSON(t, router, http.MethodGet, "/users/me", "")
	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"username":"alice"`)

	missing := doJSON(t, router, http.MethodGet, "/users/404", "")
	require.Equal(t, http.StatusNotFound, missing.Code)

	s.AssertExpectations(t)
}

func TestStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, handlers.StatusForCode(services.CodeUnauthenticated))
	assert.Equal(t, http.StatusForbidden, handlers.StatusForCode(services.CodeForbidden))
	assert.Equal(t, http.StatusBadRequest, handlers.StatusForCode(services.CodeBadUserInput))
	assert.Equal(t, http.StatusNotFound, handlers.StatusForCode(services.CodeNotFound))
	assert.Equal(t, http.StatusInternalServerError, handlers.StatusForCode(services.CodeInternal))
}
