package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

type fakeService struct {
	startErr, runErr error
	ran, closed      bool
}

func (f *fakeService) Start(context.Context) error { return f.startErr }
func (f *fakeService) Run(context.Context) error {
	f.ran = true
	return f.runErr
}
func (f *fakeService) Close() { f.closed = true }

func TestServeExitCodes(t *testing.T) {
	cases := []struct {
		name    string
		svc     *fakeService
		want    int
		wantRan bool
	}{
		{"clean shutdown", &fakeService{}, 0, true},
		{"start failure", &fakeService{startErr: errors.New("redis down")}, 1, false},
		{"server failure", &fakeService{runErr: errors.New("address in use")}, 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, serve(context.Background(), tc.svc, logger.Nop()))
			assert.Equal(t, tc.wantRan, tc.svc.ran)
			assert.True(t, tc.svc.closed)
		})
	}
}
