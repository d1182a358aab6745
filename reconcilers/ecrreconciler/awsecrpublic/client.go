/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package awsecrpublic adapts the AWS ECR Public SDK client to the
// ecrreconciler.Client contract.
//
// The public registry is a reduced-feature variant: it supports repository
// creation and lookup only. Its Capabilities report no policy support, so a
// correctly configured reconciler never reaches the policy operations; they
// exist to satisfy the contract and fail with errors.ErrUnsupported.
package awsecrpublic

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecrpublic"
	"github.com/aws/smithy-go"

	"github.com/registryops/ecrsync/reconcilers/ecrreconciler"
)

// api is the subset of the ECR Public client this adapter consumes.
type api interface {
	DescribeRepositories(ctx context.Context, params *ecrpublic.DescribeRepositoriesInput, optFns ...func(*ecrpublic.Options)) (*ecrpublic.DescribeRepositoriesOutput, error)
	CreateRepository(ctx context.Context, params *ecrpublic.CreateRepositoryInput, optFns ...func(*ecrpublic.Options)) (*ecrpublic.CreateRepositoryOutput, error)
}

// Client implements ecrreconciler.Client over the ECR Public SDK client.
type Client struct {
	ecr api
}

var _ ecrreconciler.Client = (*Client)(nil)

// New wraps an ECR Public SDK client, e.g. ecrpublic.NewFromConfig(cfg).
// Note the public registry API is only served from us-east-1.
func New(c *ecrpublic.Client) *Client {
	return &Client{ecr: c}
}

// Capabilities reports that the public registry supports neither policy
// kind.
func (c *Client) Capabilities() ecrreconciler.Capabilities {
	return ecrreconciler.Capabilities{}
}

// DescribeRepositories looks up public repositories by name.
func (c *Client) DescribeRepositories(ctx context.Context, names []string) ([]ecrreconciler.Repository, error) {
	out, err := c.ecr.DescribeRepositories(ctx, &ecrpublic.DescribeRepositoriesInput{
		RepositoryNames: names,
	})
	if err != nil {
		return nil, classify(firstName(names), err)
	}
	repos := make([]ecrreconciler.Repository, 0, len(out.Repositories))
	for _, r := range out.Repositories {
		repos = append(repos, ecrreconciler.Repository{
			Name:       aws.ToString(r.RepositoryName),
			URI:        aws.ToString(r.RepositoryUri),
			ARN:        aws.ToString(r.RepositoryArn),
			RegistryID: aws.ToString(r.RegistryId),
		})
	}
	return repos, nil
}

// CreateRepository creates the named public repository.
func (c *Client) CreateRepository(ctx context.Context, name string) (*ecrreconciler.Repository, error) {
	out, err := c.ecr.CreateRepository(ctx, &ecrpublic.CreateRepositoryInput{
		RepositoryName: aws.String(name),
	})
	if err != nil {
		return nil, classify(name, err)
	}
	if out.Repository == nil {
		return nil, nil
	}
	return &ecrreconciler.Repository{
		Name:       aws.ToString(out.Repository.RepositoryName),
		URI:        aws.ToString(out.Repository.RepositoryUri),
		ARN:        aws.ToString(out.Repository.RepositoryArn),
		RegistryID: aws.ToString(out.Repository.RegistryId),
	}, nil
}

// GetLifecyclePolicy is unsupported by the public registry.
func (c *Client) GetLifecyclePolicy(context.Context, string) (string, error) {
	return "", fmt.Errorf("public registry lifecycle policies: %w", errors.ErrUnsupported)
}

// PutLifecyclePolicy is unsupported by the public registry.
func (c *Client) PutLifecyclePolicy(context.Context, string, string) error {
	return fmt.Errorf("public registry lifecycle policies: %w", errors.ErrUnsupported)
}

// GetRepositoryPolicy is unsupported by the public registry.
func (c *Client) GetRepositoryPolicy(context.Context, string) (string, error) {
	return "", fmt.Errorf("public registry repository policies: %w", errors.ErrUnsupported)
}

// SetRepositoryPolicy is unsupported by the public registry.
func (c *Client) SetRepositoryPolicy(context.Context, string, string) error {
	return fmt.Errorf("public registry repository policies: %w", errors.ErrUnsupported)
}

// classify maps the ECR Public service's not-found error code onto the
// reconciler's classification set. The public API surfaces only the
// repository kind; everything else passes through unchanged.
func classify(name string, err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.ErrorCode() == "RepositoryNotFoundException" {
		return &ecrreconciler.NotFoundError{Kind: ecrreconciler.NotFoundRepository, Name: name, Err: err}
	}
	return err
}

func firstName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
