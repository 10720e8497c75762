package mocks

import (
	"context"

	ports "devlog-post-service/internal/domain/ports/output"

	mock "github.com/stretchr/testify/mock"
)

// UnitOfWork is a mock type for the UnitOfWork type
type UnitOfWork struct {
	mock.Mock
}

// Begin provides a mock function with given fields: ctx
func (_m *UnitOfWork) Begin(ctx context.Context) (ports.Transaction, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Begin")
	}

	var r0 ports.Transaction
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (ports.Transaction, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) ports.Transaction); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(ports.Transaction)
		}
	}
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewUnitOfWork creates a new instance of UnitOfWork. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewUnitOfWork(t interface {
	mock.TestingT
	Cleanup(func())
}) *UnitOfWork {
	m := &UnitOfWork{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
