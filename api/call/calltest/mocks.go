// Copyright (c) 2025 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package calltest

import (
	"context"
	"reflect"
	"time"

	"github.com/golang/mock/gomock"
	"go.uber.org/callstub/api/call"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/metadata"
)

// MockCall is a mock of the call.Call interface.
type MockCall struct {
	ctrl     *gomock.Controller
	recorder *MockCallMockRecorder
}

// MockCallMockRecorder is the mock recorder for MockCall.
type MockCallMockRecorder struct {
	mock *MockCall
}

// NewMockCall creates a new mock instance.
func NewMockCall(ctrl *gomock.Controller) *MockCall {
	mock := &MockCall{ctrl: ctrl}
	mock.recorder = &MockCallMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCall) EXPECT() *MockCallMockRecorder {
	return m.recorder
}

// StartBatch mocks base method.
func (m *MockCall) StartBatch(arg0 call.Batch) <-chan call.Result {
	ret := m.ctrl.Call(m, "StartBatch", arg0)
	ret0, _ := ret[0].(<-chan call.Result)
	return ret0
}

// StartBatch indicates an expected call of StartBatch.
func (mr *MockCallMockRecorder) StartBatch(arg0 interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StartBatch", reflect.TypeOf((*MockCall)(nil).StartBatch), arg0)
}

// Cancel mocks base method.
func (m *MockCall) Cancel() {
	m.ctrl.Call(m, "Cancel")
}

// Cancel indicates an expected call of Cancel.
func (mr *MockCallMockRecorder) Cancel() *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Cancel", reflect.TypeOf((*MockCall)(nil).Cancel))
}

// CancelWithStatus mocks base method.
func (m *MockCall) CancelWithStatus(arg0 callerrors.Code, arg1 string) {
	m.ctrl.Call(m, "CancelWithStatus", arg0, arg1)
}

// CancelWithStatus indicates an expected call of CancelWithStatus.
func (mr *MockCallMockRecorder) CancelWithStatus(arg0, arg1 interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CancelWithStatus", reflect.TypeOf((*MockCall)(nil).CancelWithStatus), arg0, arg1)
}

// Done mocks base method.
func (m *MockCall) Done() <-chan struct{} {
	ret := m.ctrl.Call(m, "Done")
	ret0, _ := ret[0].(<-chan struct{})
	return ret0
}

// Done indicates an expected call of Done.
func (mr *MockCallMockRecorder) Done() *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Done", reflect.TypeOf((*MockCall)(nil).Done))
}

// Deadline mocks base method.
func (m *MockCall) Deadline() (time.Time, bool) {
	ret := m.ctrl.Call(m, "Deadline")
	ret0, _ := ret[0].(time.Time)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// Deadline indicates an expected call of Deadline.
func (mr *MockCallMockRecorder) Deadline() *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Deadline", reflect.TypeOf((*MockCall)(nil).Deadline))
}

// Peer mocks base method.
func (m *MockCall) Peer() string {
	ret := m.ctrl.Call(m, "Peer")
	ret0, _ := ret[0].(string)
	return ret0
}

// Peer indicates an expected call of Peer.
func (mr *MockCallMockRecorder) Peer() *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Peer", reflect.TypeOf((*MockCall)(nil).Peer))
}

// MockChannel is a mock of the call.Channel interface.
type MockChannel struct {
	ctrl     *gomock.Controller
	recorder *MockChannelMockRecorder
}

// MockChannelMockRecorder is the mock recorder for MockChannel.
type MockChannelMockRecorder struct {
	mock *MockChannel
}

// NewMockChannel creates a new mock instance.
func NewMockChannel(ctrl *gomock.Controller) *MockChannel {
	mock := &MockChannel{ctrl: ctrl}
	mock.recorder = &MockChannelMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockChannel) EXPECT() *MockChannelMockRecorder {
	return m.recorder
}

// NewCall mocks base method.
func (m *MockChannel) NewCall(arg0 context.Context, arg1 *call.Request) (call.Call, error) {
	ret := m.ctrl.Call(m, "NewCall", arg0, arg1)
	ret0, _ := ret[0].(call.Call)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// NewCall indicates an expected call of NewCall.
func (mr *MockChannelMockRecorder) NewCall(arg0, arg1 interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NewCall", reflect.TypeOf((*MockChannel)(nil).NewCall), arg0, arg1)
}

// Target mocks base method.
func (m *MockChannel) Target() string {
	ret := m.ctrl.Call(m, "Target")
	ret0, _ := ret[0].(string)
	return ret0
}

// Target indicates an expected call of Target.
func (mr *MockChannelMockRecorder) Target() *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Target", reflect.TypeOf((*MockChannel)(nil).Target))
}

// Close mocks base method.
func (m *MockChannel) Close() error {
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close.
func (mr *MockChannelMockRecorder) Close() *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockChannel)(nil).Close))
}

// MockStream is a mock of the call.Stream interface.
type MockStream struct {
	ctrl     *gomock.Controller
	recorder *MockStreamMockRecorder
}

// MockStreamMockRecorder is the mock recorder for MockStream.
type MockStreamMockRecorder struct {
	mock *MockStream
}

// NewMockStream creates a new mock instance.
func NewMockStream(ctrl *gomock.Controller) *MockStream {
	mock := &MockStream{ctrl: ctrl}
	mock.recorder = &MockStreamMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStream) EXPECT() *MockStreamMockRecorder {
	return m.recorder
}

// SendHeaders mocks base method.
func (m *MockStream) SendHeaders(arg0 context.Context, arg1 metadata.MD) error {
	ret := m.ctrl.Call(m, "SendHeaders", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// SendHeaders indicates an expected call of SendHeaders.
func (mr *MockStreamMockRecorder) SendHeaders(arg0, arg1 interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendHeaders", reflect.TypeOf((*MockStream)(nil).SendHeaders), arg0, arg1)
}

// SendMessage mocks base method.
func (m *MockStream) SendMessage(arg0 context.Context, arg1 []byte, arg2 uint32) error {
	ret := m.ctrl.Call(m, "SendMessage", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// SendMessage indicates an expected call of SendMessage.
func (mr *MockStreamMockRecorder) SendMessage(arg0, arg1, arg2 interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendMessage", reflect.TypeOf((*MockStream)(nil).SendMessage), arg0, arg1, arg2)
}

// CloseSend mocks base method.
func (m *MockStream) CloseSend(arg0 context.Context) error {
	ret := m.ctrl.Call(m, "CloseSend", arg0)
	ret0, _ := ret[0].(error)
	return ret0
}

// CloseSend indicates an expected call of CloseSend.
func (mr *MockStreamMockRecorder) CloseSend(arg0 interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CloseSend", reflect.TypeOf((*MockStream)(nil).CloseSend), arg0)
}

// Headers mocks base method.
func (m *MockStream) Headers(arg0 context.Context) (metadata.MD, error) {
	ret := m.ctrl.Call(m, "Headers", arg0)
	ret0, _ := ret[0].(metadata.MD)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Headers indicates an expected call of Headers.
func (mr *MockStreamMockRecorder) Headers(arg0 interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Headers", reflect.TypeOf((*MockStream)(nil).Headers), arg0)
}

// RecvMessage mocks base method.
func (m *MockStream) RecvMessage(arg0 context.Context) ([]byte, error) {
	ret := m.ctrl.Call(m, "RecvMessage", arg0)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RecvMessage indicates an expected call of RecvMessage.
func (mr *MockStreamMockRecorder) RecvMessage(arg0 interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecvMessage", reflect.TypeOf((*MockStream)(nil).RecvMessage), arg0)
}

// Status mocks base method.
func (m *MockStream) Status(arg0 context.Context) *callerrors.Status {
	ret := m.ctrl.Call(m, "Status", arg0)
	ret0, _ := ret[0].(*callerrors.Status)
	return ret0
}

// Status indicates an expected call of Status.
func (mr *MockStreamMockRecorder) Status(arg0 interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Status", reflect.TypeOf((*MockStream)(nil).Status), arg0)
}

// Cancel mocks base method.
func (m *MockStream) Cancel() {
	m.ctrl.Call(m, "Cancel")
}

// Cancel indicates an expected call of Cancel.
func (mr *MockStreamMockRecorder) Cancel() *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Cancel", reflect.TypeOf((*MockStream)(nil).Cancel))
}

// Peer mocks base method.
func (m *MockStream) Peer() string {
	ret := m.ctrl.Call(m, "Peer")
	ret0, _ := ret[0].(string)
	return ret0
}

// Peer indicates an expected call of Peer.
func (mr *MockStreamMockRecorder) Peer() *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Peer", reflect.TypeOf((*MockStream)(nil).Peer))
}
