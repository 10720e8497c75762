package mocks

import (
	"context"

	comment_repository "devlog-post-service/internal/domain/ports/output/comment"
	post_repository "devlog-post-service/internal/domain/ports/output/post"

	mock "github.com/stretchr/testify/mock"
)

// Transaction is a mock type for the Transaction type
type Transaction struct {
	mock.Mock
}

// Commit provides a mock function with given fields: ctx
func (_m *Transaction) Commit(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Commit")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// CommentRepository provides a mock function with no fields
func (_m *Transaction) CommentRepository() comment_repository.Repository {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for CommentRepository")
	}

	var r0 comment_repository.Repository
	if rf, ok := ret.Get(0).(func() comment_repository.Repository); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(comment_repository.Repository)
		}
	}

	return r0
}

// PostRepository provides a mock function with no fields
func (_m *Transaction) PostRepository() post_repository.Repository {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for PostRepository")
	}

	var r0 post_repository.Repository
	if rf, ok := ret.Get(0).(func() post_repository.Repository); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(post_repository.Repository)
		}
	}

	return r0
}

// Rollback provides a mock function with given fields: ctx
func (_m *Transaction) Rollback(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Rollback")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewTransaction creates a new instance of Transaction. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTransaction(t interface {
	mock.TestingT
	Cleanup(func())
}) *Transaction {
	m := &Transaction{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
