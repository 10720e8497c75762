package mocks

import (
	"context"

	model "devlog-post-service/internal/domain/models"

	mock "github.com/stretchr/testify/mock"
)

// PostCache is a mock type for the PostCache type
type PostCache struct {
	mock.Mock
}

// DeletePost provides a mock function with given fields: ctx, postID
func (_m *PostCache) DeletePost(ctx context.Context, postID int64) error {
	ret := _m.Called(ctx, postID)

	if len(ret) == 0 {
		panic("no return value specified for DeletePost")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) error); ok {
		r0 = rf(ctx, postID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetPost provides a mock function with given fields: ctx, postID
func (_m *PostCache) GetPost(ctx context.Context, postID int64) (*model.PostDetailed, error) {
	ret := _m.Called(ctx, postID)

	if len(ret) == 0 {
		panic("no return value specified for GetPost")
	}

	var r0 *model.PostDetailed
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) (*model.PostDetailed, error)); ok {
		return rf(ctx, postID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int64) *model.PostDetailed); ok {
		r0 = rf(ctx, postID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.PostDetailed)
		}
	}
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, postID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// PostVersion provides a mock function with given fields: ctx, postID
func (_m *PostCache) PostVersion(ctx context.Context, postID int64) (int64, error) {
	ret := _m.Called(ctx, postID)

	if len(ret) == 0 {
		panic("no return value specified for PostVersion")
	}

	var r0 int64
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) (int64, error)); ok {
		return rf(ctx, postID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int64) int64); ok {
		r0 = rf(ctx, postID)
	} else {
		r0 = ret.Get(0).(int64)
	}
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, postID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SetPost provides a mock function with given fields: ctx, post, version
func (_m *PostCache) SetPost(ctx context.Context, post *model.PostDetailed, version int64) error {
	ret := _m.Called(ctx, post, version)

	if len(ret) == 0 {
		panic("no return value specified for SetPost")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *model.PostDetailed, int64) error); ok {
		r0 = rf(ctx, post, version)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewPostCache creates a new instance of PostCache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewPostCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *PostCache {
	m := &PostCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
