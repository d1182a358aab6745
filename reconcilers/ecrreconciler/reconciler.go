/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ecrreconciler

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-containerregistry/pkg/name"

	"github.com/registryops/ecrsync/reconcilers/ecrreconciler/policyjson"
)

// Reconciler drives a single repository's configuration to the desired
// state: the repository exists, and each configured policy document matches
// the registry's copy. Every step is awaited before the next begins, and no
// step is retried; the surrounding pipeline owns run-level retry.
type Reconciler struct {
	client Client

	readFile DocumentSource

	lifecyclePolicyPath  string
	repositoryPolicyPath string
}

// New constructs a Reconciler for the provided registry client.
func New(client Client, opts ...Option) *Reconciler {
	r := &Reconciler{
		client:   client,
		readFile: osDocumentSource,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile ensures the named repository exists and its configured policies
// match their local documents, returning the repository's URI.
//
// The sequence is ensure-repository, then lifecycle policy, then repository
// policy; each policy step runs only when a document path was configured.
// Policies are written only when the parsed local document differs
// structurally from the registry's copy, so re-running against an already
// reconciled repository performs no writes.
func (r *Reconciler) Reconcile(ctx context.Context, repository string) (string, error) {
	if r.client == nil {
		return "", errors.New("no registry client configured")
	}
	if repository == "" {
		return "", errors.New("repository name is required")
	}
	if err := r.checkCapabilities(); err != nil {
		return "", err
	}

	repo, err := r.ensureRepository(ctx, repository)
	if err != nil {
		return "", err
	}

	if r.lifecyclePolicyPath != "" {
		if err := r.reconcilePolicy(ctx, repository, policyStep{
			kind:       NotFoundLifecyclePolicy,
			path:       r.lifecyclePolicyPath,
			getCurrent: r.client.GetLifecyclePolicy,
			put:        r.client.PutLifecyclePolicy,
		}); err != nil {
			return "", err
		}
	}

	if r.repositoryPolicyPath != "" {
		if err := r.reconcilePolicy(ctx, repository, policyStep{
			kind:       NotFoundRepositoryPolicy,
			path:       r.repositoryPolicyPath,
			getCurrent: r.client.GetRepositoryPolicy,
			put:        r.client.SetRepositoryPolicy,
		}); err != nil {
			return "", err
		}
	}

	return repo.URI, nil
}

// checkCapabilities rejects policy documents configured against a registry
// variant that cannot hold them. The public registry exposes no policy
// operations at all, so this is a configuration error rather than something
// to silently skip.
func (r *Reconciler) checkCapabilities() error {
	caps := r.client.Capabilities()
	if r.lifecyclePolicyPath != "" && !caps.LifecyclePolicy {
		return fmt.Errorf("lifecycle policy %q configured, but the registry does not support lifecycle policies", r.lifecyclePolicyPath)
	}
	if r.repositoryPolicyPath != "" && !caps.RepositoryPolicy {
		return fmt.Errorf("repository policy %q configured, but the registry does not support repository policies", r.repositoryPolicyPath)
	}
	return nil
}

// ensureRepository fetches the repository by name, creating it when the
// lookup reports repository-not-found. The returned handle always carries a
// URI that parses as an image repository reference.
func (r *Reconciler) ensureRepository(ctx context.Context, repository string) (*Repository, error) {
	repos, err := r.client.DescribeRepositories(ctx, []string{repository})
	switch {
	case err == nil:
		// A lookup for exactly one name must yield exactly one record.
		if len(repos) != 1 {
			return nil, contractErrorf("describing %q returned %d repositories, wanted 1", repository, len(repos))
		}
		if err := validateHandle(&repos[0]); err != nil {
			return nil, err
		}
		clog.InfoContextf(ctx, "Found repository %s (%s)", repository, repos[0].URI)
		return &repos[0], nil

	case isNotFound(err, NotFoundRepository):
		repo, err := r.client.CreateRepository(ctx, repository)
		if err != nil {
			return nil, err
		}
		if repo == nil {
			return nil, contractErrorf("creating %q returned no repository record", repository)
		}
		if err := validateHandle(repo); err != nil {
			return nil, err
		}
		clog.InfoContextf(ctx, "Created repository %s (%s)", repository, repo.URI)
		return repo, nil

	default:
		return nil, err
	}
}

// policyStep binds the per-kind pieces of the shared diff-then-write
// routine: the not-found classification that marks this policy kind absent,
// the local document path, and the registry operations for the kind.
type policyStep struct {
	kind       NotFoundKind
	path       string
	getCurrent func(ctx context.Context, repository string) (string, error)
	put        func(ctx context.Context, repository, text string) error
}

// reconcilePolicy compares the local policy document against the registry's
// copy and writes the local document when they differ structurally or when
// the registry has no policy of this kind yet. At most one write occurs.
func (r *Reconciler) reconcilePolicy(ctx context.Context, repository string, step policyStep) error {
	desired, err := r.readFile(step.path)
	if err != nil {
		return fmt.Errorf("reading %s document %q: %w", step.kind, step.path, err)
	}
	// Surface malformed local documents before touching the registry.
	if err := policyjson.Validate(desired); err != nil {
		return fmt.Errorf("parsing %s document %q: %w", step.kind, step.path, err)
	}

	current, err := step.getCurrent(ctx, repository)
	switch {
	case err == nil:
		equal, err := policyjson.Equal(desired, []byte(current))
		if err != nil {
			return fmt.Errorf("comparing %s for %s: %w", step.kind, repository, err)
		}
		if equal {
			clog.InfoContextf(ctx, "Repository %s: %s is already up to date", repository, step.kind)
			return nil
		}
		clog.DebugContextf(ctx, "Repository %s: %s differs from %s", repository, step.kind, step.path)

	case isNotFound(err, NotFoundRepository) || isNotFound(err, step.kind):
		// No existing policy of this kind; write unconditionally.
		clog.DebugContextf(ctx, "Repository %s: no existing %s", repository, step.kind)

	default:
		return err
	}

	if err := step.put(ctx, repository, string(desired)); err != nil {
		return err
	}
	clog.InfoContextf(ctx, "Repository %s: successfully put %s", repository, step.kind)
	return nil
}

// validateHandle enforces the registry's documented contract that every
// repository record carries a usable address.
func validateHandle(repo *Repository) error {
	if repo.URI == "" {
		return contractErrorf("repository %q record has no URI", repo.Name)
	}
	if _, err := name.NewRepository(repo.URI); err != nil {
		return contractErrorf("repository %q has unparseable URI %q: %v", repo.Name, repo.URI, err)
	}
	return nil
}

// isNotFound reports whether err is a NotFoundError of the given kind.
func isNotFound(err error, kind NotFoundKind) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe) && nfe.Kind == kind
}
