/*
 * Copyright 2026 The ZoneSync Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package errors provides structured, status-coded errors for the team
// service contracts. Callers branch on the status to decide whether a
// failure is a validation problem, missing resource, or expired credential.
package errors

import "fmt"

// StatusCode classifies an error from the team service or the client engine.
type StatusCode int

const (
	// ErrCodeInvalidArgument indicates input that is wrong regardless of the
	// state of the system, such as an empty member name.
	ErrCodeInvalidArgument StatusCode = 3

	// ErrCodeNotFound indicates that a requested entity does not exist.
	ErrCodeNotFound StatusCode = 5

	// ErrCodeAlreadyExists indicates an attempt to create an entity that
	// already exists.
	ErrCodeAlreadyExists StatusCode = 6

	// ErrCodePermissionDenied indicates that the session lacks the rights
	// for the operation, such as a member token on an admin action.
	ErrCodePermissionDenied StatusCode = 7

	// ErrCodeFailedPrecondition indicates that the system is not in the
	// state required for the operation.
	ErrCodeFailedPrecondition StatusCode = 9

	// ErrCodeInternal indicates a broken invariant. Reserved for serious
	// errors.
	ErrCodeInternal StatusCode = 13

	// ErrCodeUnauthenticated indicates a missing, invalid or expired token.
	// Clients must clear their stored session when they see it.
	ErrCodeUnauthenticated StatusCode = 16
)

// String returns the string representation of the status code.
func (c StatusCode) String() string {
	switch c {
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeAlreadyExists:
		return "already_exists"
	case ErrCodePermissionDenied:
		return "permission_denied"
	case ErrCodeFailedPrecondition:
		return "failed_precondition"
	case ErrCodeInternal:
		return "internal"
	case ErrCodeUnauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("code_%d", int(c))
	}
}
