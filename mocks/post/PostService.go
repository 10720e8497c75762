package mocks

import (
	"context"

	model "devlog-post-service/internal/domain/models"

	mock "github.com/stretchr/testify/mock"
)

// Service is a mock type for the Service type
type Service struct {
	mock.Mock
}

// AttachComment provides a mock function with given fields: ctx, postID, commentID
func (_m *Service) AttachComment(ctx context.Context, postID int64, commentID int64) error {
	ret := _m.Called(ctx, postID, commentID)

	if len(ret) == 0 {
		panic("no return value specified for AttachComment")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64) error); ok {
		r0 = rf(ctx, postID, commentID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// CreatePost provides a mock function with given fields: ctx, post
func (_m *Service) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error) {
	ret := _m.Called(ctx, post)

	if len(ret) == 0 {
		panic("no return value specified for CreatePost")
	}

	var r0 *model.PostDetailed
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, *model.CreatePostDTO) (*model.PostDetailed, error)); ok {
		return rf(ctx, post)
	}
	if rf, ok := ret.Get(0).(func(context.Context, *model.CreatePostDTO) *model.PostDetailed); ok {
		r0 = rf(ctx, post)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.PostDetailed)
		}
	}
	if rf, ok := ret.Get(1).(func(context.Context, *model.CreatePostDTO) error); ok {
		r1 = rf(ctx, post)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// DeletePost provides a mock function with given fields: ctx, userID, id
func (_m *Service) DeletePost(ctx context.Context, userID int64, id int64) error {
	ret := _m.Called(ctx, userID, id)

	if len(ret) == 0 {
		panic("no return value specified for DeletePost")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64) error); ok {
		r0 = rf(ctx, userID, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// DetachComment provides a mock function with given fields: ctx, postID, commentID
func (_m *Service) DetachComment(ctx context.Context, postID int64, commentID int64) error {
	ret := _m.Called(ctx, postID, commentID)

	if len(ret) == 0 {
		panic("no return value specified for DetachComment")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64) error); ok {
		r0 = rf(ctx, postID, commentID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetPostByID provides a mock function with given fields: ctx, id
func (_m *Service) GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for GetPostByID")
	}

	var r0 *model.PostDetailed
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) (*model.PostDetailed, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int64) *model.PostDetailed); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.PostDetailed)
		}
	}
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListDrafts provides a mock function with given fields: ctx, authorID
func (_m *Service) ListDrafts(ctx context.Context, authorID int64) ([]*model.PostDetailed, error) {
	ret := _m.Called(ctx, authorID)

	if len(ret) == 0 {
		panic("no return value specified for ListDrafts")
	}

	var r0 []*model.PostDetailed
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) ([]*model.PostDetailed, error)); ok {
		return rf(ctx, authorID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int64) []*model.PostDetailed); ok {
		r0 = rf(ctx, authorID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*model.PostDetailed)
		}
	}
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, authorID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListPopularPosts provides a mock function with given fields: ctx, limit
func (_m *Service) ListPopularPosts(ctx context.Context, limit int) ([]*model.PostDetailed, error) {
	ret := _m.Called(ctx, limit)

	if len(ret) == 0 {
		panic("no return value specified for ListPopularPosts")
	}

	var r0 []*model.PostDetailed
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) ([]*model.PostDetailed, error)); ok {
		return rf(ctx, limit)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) []*model.PostDetailed); ok {
		r0 = rf(ctx, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*model.PostDetailed)
		}
	}
	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListPosts provides a mock function with given fields: ctx, filters
func (_m *Service) ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.PostDetailed, int, error) {
	ret := _m.Called(ctx, filters)

	if len(ret) == 0 {
		panic("no return value specified for ListPosts")
	}

	var r0 []*model.PostDetailed
	var r1 int
	var r2 error
	if rf, ok := ret.Get(0).(func(context.Context, *model.PostFilters) ([]*model.PostDetailed, int, error)); ok {
		return rf(ctx, filters)
	}
	if rf, ok := ret.Get(0).(func(context.Context, *model.PostFilters) []*model.PostDetailed); ok {
		r0 = rf(ctx, filters)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*model.PostDetailed)
		}
	}
	if rf, ok := ret.Get(1).(func(context.Context, *model.PostFilters) int); ok {
		r1 = rf(ctx, filters)
	} else {
		r1 = ret.Get(1).(int)
	}
	if rf, ok := ret.Get(2).(func(context.Context, *model.PostFilters) error); ok {
		r2 = rf(ctx, filters)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// UpdatePost provides a mock function with given fields: ctx, userID, id, post
func (_m *Service) UpdatePost(ctx context.Context, userID int64, id int64, post *model.UpdatePostDTO) (*model.PostDetailed, error) {
	ret := _m.Called(ctx, userID, id, post)

	if len(ret) == 0 {
		panic("no return value specified for UpdatePost")
	}

	var r0 *model.PostDetailed
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64, *model.UpdatePostDTO) (*model.PostDetailed, error)); ok {
		return rf(ctx, userID, id, post)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64, *model.UpdatePostDTO) *model.PostDetailed); ok {
		r0 = rf(ctx, userID, id, post)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.PostDetailed)
		}
	}
	if rf, ok := ret.Get(1).(func(context.Context, int64, int64, *model.UpdatePostDTO) error); ok {
		r1 = rf(ctx, userID, id, post)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Vote provides a mock function with given fields: ctx, userID, id, direction
func (_m *Service) Vote(ctx context.Context, userID int64, id int64, direction model.VoteDirection) (model.VoteOutcome, error) {
	ret := _m.Called(ctx, userID, id, direction)

	if len(ret) == 0 {
		panic("no return value specified for Vote")
	}

	var r0 model.VoteOutcome
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64, model.VoteDirection) (model.VoteOutcome, error)); ok {
		return rf(ctx, userID, id, direction)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64, model.VoteDirection) model.VoteOutcome); ok {
		r0 = rf(ctx, userID, id, direction)
	} else {
		r0 = ret.Get(0).(model.VoteOutcome)
	}
	if rf, ok := ret.Get(1).(func(context.Context, int64, int64, model.VoteDirection) error); ok {
		r1 = rf(ctx, userID, id, direction)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewService creates a new instance of Service. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewService(t interface {
	mock.TestingT
	Cleanup(func())
}) *Service {
	m := &Service{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
