/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ecrreconciler

import (
	"context"
	"fmt"
)

// Capabilities declares which optional reconciliation steps a registry
// variant supports. The private regional registry supports both policy
// kinds; the public registry supports neither.
type Capabilities struct {
	LifecyclePolicy  bool
	RepositoryPolicy bool
}

// Repository is the handle returned for a registry repository. URI is the
// address clients use to pull and push images; the registry assigns it at
// creation time and it never changes afterwards.
type Repository struct {
	Name       string
	URI        string
	ARN        string
	RegistryID string
}

// Client is the registry surface the reconciler drives. Implementations wrap
// a concrete registry SDK (see the awsecr and awsecrpublic subpackages) and
// translate its not-found failures into *NotFoundError; every other error is
// returned unchanged so callers retain the SDK's original diagnostics.
//
// Operations a variant does not support per Capabilities are never invoked
// by the reconciler.
type Client interface {
	Capabilities() Capabilities

	DescribeRepositories(ctx context.Context, names []string) ([]Repository, error)
	CreateRepository(ctx context.Context, name string) (*Repository, error)

	GetLifecyclePolicy(ctx context.Context, repository string) (string, error)
	PutLifecyclePolicy(ctx context.Context, repository, text string) error

	GetRepositoryPolicy(ctx context.Context, repository string) (string, error)
	SetRepositoryPolicy(ctx context.Context, repository, text string) error
}

// NotFoundKind identifies which resource a NotFoundError refers to.
type NotFoundKind string

const (
	// NotFoundRepository means the repository itself does not exist.
	NotFoundRepository NotFoundKind = "repository"
	// NotFoundLifecyclePolicy means the repository exists but has no
	// lifecycle policy attached.
	NotFoundLifecyclePolicy NotFoundKind = "lifecycle policy"
	// NotFoundRepositoryPolicy means the repository exists but has no
	// repository policy attached.
	NotFoundRepositoryPolicy NotFoundKind = "repository policy"
)

// NotFoundError reports that a named registry resource does not exist yet.
// It is a branch signal for the reconciler (create or put unconditionally),
// never a terminal failure. The wrapped error is the registry SDK's original
// error, preserved for diagnostics.
type NotFoundError struct {
	Kind NotFoundKind
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found: %v", e.Kind, e.Name, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ContractError reports that the registry responded outside its documented
// contract: a lookup for one name returned zero or multiple records, or a
// repository handle came back without a usable address. Always fatal; the
// remote state is not something this reconciler can correct.
type ContractError struct {
	Reason string
}

func (e *ContractError) Error() string {
	return "registry contract violation: " + e.Reason
}

func contractErrorf(format string, args ...any) *ContractError {
	return &ContractError{Reason: fmt.Sprintf(format, args...)}
}
