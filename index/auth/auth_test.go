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
package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderAuthenticator(t *testing.T) {
	require := require.New(t)

	a := NewHeaderAuthenticator()

	r, err := http.NewRequest("GET", "/torrents", nil)
	require.NoError(err)
	_, err = a.UserFromRequest(r)
	require.Error(err)

	r.Header.Set("X-Forwarded-User", "alice")
	u, err := a.UserFromRequest(r)
	require.NoError(err)
	require.Equal(&User{Username: "alice"}, u)

	r.Header.Set("X-Forwarded-Admin", "true")
	u, err = a.UserFromRequest(r)
	require.NoError(err)
	require.True(u.Administrator)
}
