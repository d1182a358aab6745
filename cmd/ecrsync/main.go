/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements a one-shot pipeline step that reconciles an ECR
// repository against declared desired state and emits its URI for the
// downstream tag-and-push steps.
//
// The step never retries; the surrounding workflow owns run-level retry.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecrpublic"
	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"github.com/registryops/ecrsync/reconcilers/ecrreconciler"
	"github.com/registryops/ecrsync/reconcilers/ecrreconciler/awsecr"
	"github.com/registryops/ecrsync/reconcilers/ecrreconciler/awsecrpublic"
)

type config struct {
	RepositoryName string `env:"REPOSITORY_NAME,required"`

	// Policy documents are private-registry only; the reconciler rejects
	// them when PUBLIC_REGISTRY is set.
	LifecyclePolicyPath  string `env:"LIFECYCLE_POLICY_PATH"`
	RepositoryPolicyPath string `env:"REPOSITORY_POLICY_PATH"`

	PublicRegistry bool `env:"PUBLIC_REGISTRY,default=false"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	client, err := newClient(ctx, cfg.PublicRegistry)
	if err != nil {
		clog.FatalContextf(ctx, "configuring registry client: %v", err)
	}

	var opts []ecrreconciler.Option
	if cfg.LifecyclePolicyPath != "" {
		opts = append(opts, ecrreconciler.WithLifecyclePolicy(cfg.LifecyclePolicyPath))
	}
	if cfg.RepositoryPolicyPath != "" {
		opts = append(opts, ecrreconciler.WithRepositoryPolicy(cfg.RepositoryPolicyPath))
	}

	uri, err := ecrreconciler.New(client, opts...).Reconcile(ctx, cfg.RepositoryName)
	if err != nil {
		clog.FatalContextf(ctx, "reconciling repository %s: %v", cfg.RepositoryName, err)
	}

	fmt.Println(uri)
	if err := writeStepOutput("repository-uri", uri); err != nil {
		clog.FatalContextf(ctx, "writing step output: %v", err)
	}
}

func newClient(ctx context.Context, public bool) (ecrreconciler.Client, error) {
	if public {
		// The public registry API is only served from us-east-1.
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion("us-east-1"))
		if err != nil {
			return nil, err
		}
		return awsecrpublic.New(ecrpublic.NewFromConfig(awsCfg)), nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return awsecr.New(ecr.NewFromConfig(awsCfg)), nil
}

// writeStepOutput appends a name=value output binding when running as a
// GitHub Actions step. Outside of a workflow it is a no-op.
func writeStepOutput(name, value string) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(f, "%s=%s\n", name, value)
	return errors.Join(err, f.Close())
}
