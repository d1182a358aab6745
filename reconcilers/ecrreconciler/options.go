/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ecrreconciler

import "os"

// DocumentSource supplies the bytes of a policy document for a path. The
// default reads from the local filesystem; tests substitute an in-memory
// supplier.
type DocumentSource func(path string) ([]byte, error)

func osDocumentSource(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Option configures the Reconciler.
type Option func(*Reconciler)

// WithLifecyclePolicy configures the local lifecycle policy document to
// reconcile against the repository's lifecycle policy.
func WithLifecyclePolicy(path string) Option {
	return func(r *Reconciler) {
		r.lifecyclePolicyPath = path
	}
}

// WithRepositoryPolicy configures the local repository policy document to
// reconcile against the repository's access policy.
func WithRepositoryPolicy(path string) Option {
	return func(r *Reconciler) {
		r.repositoryPolicyPath = path
	}
}

// WithDocumentSource overrides how policy documents are read.
func WithDocumentSource(src DocumentSource) Option {
	return func(r *Reconciler) {
		r.readFile = src
	}
}
