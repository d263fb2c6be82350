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

// Package auth resolves the user behind index requests. User resolution
// itself (sessions, tokens) lives outside this codebase; handlers only care
// about the resulting identity.
package auth

import (
	"errors"
	"net/http"
)

// User identifies an authenticated requester.
type User struct {
	Username      string
	Administrator bool
}

// Authenticator resolves the user behind a request. Any error means the
// request is anonymous.
type Authenticator interface {
	UserFromRequest(r *http.Request) (*User, error)
}

type headerAuthenticator struct{}

// NewHeaderAuthenticator returns an Authenticator for deployments where a
// fronting proxy performs authentication and forwards the verified identity
// in request headers. Requests without an X-Forwarded-User header are
// treated as anonymous.
func NewHeaderAuthenticator() Authenticator {
	return headerAuthenticator{}
}

func (headerAuthenticator) UserFromRequest(r *http.Request) (*User, error) {
	username := r.Header.Get("X-Forwarded-User")
	if username == "" {
		return nil, errors.New("no user header")
	}
	return &User{
		Username:      username,
		Administrator: r.Header.Get("X-Forwarded-Admin") == "true",
	}, nil
}
