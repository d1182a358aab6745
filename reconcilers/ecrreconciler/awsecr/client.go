/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package awsecr adapts the AWS ECR (private, regional registry) SDK client
// to the ecrreconciler.Client contract.
//
// Not-found failures are classified by the error code the service attaches
// to each API error (RepositoryNotFoundException and friends), never by
// message text; any error without a recognized code passes through
// unchanged.
package awsecr

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/smithy-go"

	"github.com/registryops/ecrsync/reconcilers/ecrreconciler"
)

// api is the subset of the ECR client this adapter consumes.
type api interface {
	DescribeRepositories(ctx context.Context, params *ecr.DescribeRepositoriesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error)
	CreateRepository(ctx context.Context, params *ecr.CreateRepositoryInput, optFns ...func(*ecr.Options)) (*ecr.CreateRepositoryOutput, error)
	GetLifecyclePolicy(ctx context.Context, params *ecr.GetLifecyclePolicyInput, optFns ...func(*ecr.Options)) (*ecr.GetLifecyclePolicyOutput, error)
	PutLifecyclePolicy(ctx context.Context, params *ecr.PutLifecyclePolicyInput, optFns ...func(*ecr.Options)) (*ecr.PutLifecyclePolicyOutput, error)
	GetRepositoryPolicy(ctx context.Context, params *ecr.GetRepositoryPolicyInput, optFns ...func(*ecr.Options)) (*ecr.GetRepositoryPolicyOutput, error)
	SetRepositoryPolicy(ctx context.Context, params *ecr.SetRepositoryPolicyInput, optFns ...func(*ecr.Options)) (*ecr.SetRepositoryPolicyOutput, error)
}

// Client implements ecrreconciler.Client over the ECR SDK client.
type Client struct {
	ecr api
}

var _ ecrreconciler.Client = (*Client)(nil)

// New wraps an ECR SDK client, e.g. ecr.NewFromConfig(cfg).
func New(c *ecr.Client) *Client {
	return &Client{ecr: c}
}

// Capabilities reports full support: the private registry exposes both
// lifecycle and repository policies.
func (c *Client) Capabilities() ecrreconciler.Capabilities {
	return ecrreconciler.Capabilities{
		LifecyclePolicy:  true,
		RepositoryPolicy: true,
	}
}

// DescribeRepositories looks up repositories by name.
func (c *Client) DescribeRepositories(ctx context.Context, names []string) ([]ecrreconciler.Repository, error) {
	out, err := c.ecr.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
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

// CreateRepository creates the named repository.
func (c *Client) CreateRepository(ctx context.Context, name string) (*ecrreconciler.Repository, error) {
	out, err := c.ecr.CreateRepository(ctx, &ecr.CreateRepositoryInput{
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

// GetLifecyclePolicy returns the repository's lifecycle policy text.
func (c *Client) GetLifecyclePolicy(ctx context.Context, repository string) (string, error) {
	out, err := c.ecr.GetLifecyclePolicy(ctx, &ecr.GetLifecyclePolicyInput{
		RepositoryName: aws.String(repository),
	})
	if err != nil {
		return "", classify(repository, err)
	}
	return aws.ToString(out.LifecyclePolicyText), nil
}

// PutLifecyclePolicy replaces the repository's lifecycle policy.
func (c *Client) PutLifecyclePolicy(ctx context.Context, repository, text string) error {
	_, err := c.ecr.PutLifecyclePolicy(ctx, &ecr.PutLifecyclePolicyInput{
		RepositoryName:      aws.String(repository),
		LifecyclePolicyText: aws.String(text),
	})
	if err != nil {
		return classify(repository, err)
	}
	return nil
}

// GetRepositoryPolicy returns the repository's access policy text.
func (c *Client) GetRepositoryPolicy(ctx context.Context, repository string) (string, error) {
	out, err := c.ecr.GetRepositoryPolicy(ctx, &ecr.GetRepositoryPolicyInput{
		RepositoryName: aws.String(repository),
	})
	if err != nil {
		return "", classify(repository, err)
	}
	return aws.ToString(out.PolicyText), nil
}

// SetRepositoryPolicy replaces the repository's access policy.
func (c *Client) SetRepositoryPolicy(ctx context.Context, repository, text string) error {
	_, err := c.ecr.SetRepositoryPolicy(ctx, &ecr.SetRepositoryPolicyInput{
		RepositoryName: aws.String(repository),
		PolicyText:     aws.String(text),
	})
	if err != nil {
		return classify(repository, err)
	}
	return nil
}

// classify maps the ECR service's not-found error codes onto the
// reconciler's closed classification set. Errors without a recognized code
// pass through unchanged so callers keep the SDK's original diagnostics.
func classify(name string, err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.ErrorCode() {
	case "RepositoryNotFoundException":
		return &ecrreconciler.NotFoundError{Kind: ecrreconciler.NotFoundRepository, Name: name, Err: err}
	case "LifecyclePolicyNotFoundException":
		return &ecrreconciler.NotFoundError{Kind: ecrreconciler.NotFoundLifecyclePolicy, Name: name, Err: err}
	case "RepositoryPolicyNotFoundException":
		return &ecrreconciler.NotFoundError{Kind: ecrreconciler.NotFoundRepositoryPolicy, Name: name, Err: err}
	}
	return err
}

func firstName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
