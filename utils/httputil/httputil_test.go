// Copyright (c) 2016-2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package httputil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sudisk/torrust/utils/backoff"

	"github.com/stretchr/testify/require"
)

func TestSendAcceptsConfiguredCodes(t *testing.T) {
	require := require.New(t)

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer s.Close()

	_, err := Get(s.URL)
	require.Error(err)
	require.True(IsStatus(err, http.StatusAccepted))

	resp, err := Get(s.URL, SendAcceptedCodes(http.StatusOK, http.StatusAccepted))
	require.NoError(err)
	resp.Body.Close()
}

func TestStatusErrorIncludesResponseDump(t *testing.T) {
	require := require.New(t)

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "no such thing")
	}))
	defer s.Close()

	_, err := Get(s.URL)
	require.True(IsNotFound(err))
	require.Contains(err.Error(), "no such thing")
}

func TestSendHeaders(t *testing.T) {
	require := require.New(t)

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal("bar", r.Header.Get("X-Foo"))
	}))
	defer s.Close()

	resp, err := Get(s.URL, SendHeaders(map[string]string{"X-Foo": "bar"}))
	require.NoError(err)
	resp.Body.Close()
}

func TestSendNetworkError(t *testing.T) {
	_, err := Get("http://localhost:1/nothing-listens-here",
		SendTimeout(time.Second))
	require.True(t, IsNetworkError(err))
}

func TestSendRetryRecoversFromNetworkError(t *testing.T) {
	require := require.New(t)

	var hits int64
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
	}))
	addr := s.URL
	s.Close()

	// Nothing listens anymore; retries all fail with network errors.
	b := backoff.New(backoff.Config{
		Min:          time.Millisecond,
		Max:          2 * time.Millisecond,
		RetryTimeout: 20 * time.Millisecond,
	})
	_, err := Get(addr, SendRetry(b))
	require.Error(err)
	require.True(IsNetworkError(err))
	require.Zero(atomic.LoadInt64(&hits))
}

func TestSendRetryDoesNotRetryStatusErrors(t *testing.T) {
	require := require.New(t)

	var hits int64
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer s.Close()

	b := backoff.New(backoff.Config{RetryTimeout: 50 * time.Millisecond})
	_, err := Get(s.URL, SendRetry(b))
	require.Error(err)
	require.True(IsStatus(err, http.StatusInternalServerError))
	require.Equal(int64(1), atomic.LoadInt64(&hits))
}
