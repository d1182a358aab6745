/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package ecrreconciler reconciles an ECR repository's configuration against
// declared desired state: the repository exists, and its lifecycle and
// repository policies match locally supplied JSON documents.
//
// The reconciler is idempotent. Policies are compared by deep structural
// equality of their parsed JSON, so whitespace, key order, and numeric
// formatting differences in the local documents never trigger a write;
// re-running against an already reconciled repository performs describe and
// get calls only.
//
// # Basic Usage
//
// Construct a Reconciler with a registry client from the awsecr or
// awsecrpublic subpackage, then reconcile a repository by name:
//
//	client := awsecr.New(ecr.NewFromConfig(cfg))
//	r := ecrreconciler.New(client,
//	    ecrreconciler.WithLifecyclePolicy("policies/lifecycle.json"),
//	    ecrreconciler.WithRepositoryPolicy("policies/access.json"),
//	)
//	uri, err := r.Reconcile(ctx, "app-a")
//
// The returned URI is the repository's canonical address, suitable for
// downstream pipeline steps that tag and push images.
//
// # Registry Variants
//
// Capabilities declared by the client gate the optional policy steps. The
// private regional registry supports both policy kinds; the public registry
// supports repository creation only, and configuring a policy document
// against it is a configuration error rather than a silent no-op.
//
// # Error Handling
//
// Clients classify their SDK's not-found failures as *NotFoundError, which
// the reconciler consumes as a branch signal: a missing repository is
// created, a missing policy is written unconditionally. Every other remote
// error, and any local read or parse failure, aborts the invocation and
// propagates unchanged so the caller sees the SDK's original diagnostics.
// A registry response outside its documented contract (an ambiguous lookup
// result, or a repository record without a usable address) surfaces as
// *ContractError.
//
// # Retries
//
// This package never retries. Each invocation either fully completes or
// fails on the first error; the surrounding automation pipeline owns
// run-level retry.
package ecrreconciler
