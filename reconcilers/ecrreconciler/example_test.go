/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ecrreconciler_test

import (
	"context"
	"fmt"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecrpublic"

	"github.com/registryops/ecrsync/reconcilers/ecrreconciler"
	"github.com/registryops/ecrsync/reconcilers/ecrreconciler/awsecr"
	"github.com/registryops/ecrsync/reconcilers/ecrreconciler/awsecrpublic"
)

// ExampleNew demonstrates reconciling a private registry repository with
// both policy kinds.
func ExampleNew() {
	ctx := context.Background()

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}

	r := ecrreconciler.New(awsecr.New(ecr.NewFromConfig(cfg)),
		ecrreconciler.WithLifecyclePolicy("policies/lifecycle.json"),
		ecrreconciler.WithRepositoryPolicy("policies/access.json"),
	)

	uri, err := r.Reconcile(ctx, "app-a")
	if err != nil {
		log.Fatal(err)
	}
	// The URI feeds the pipeline's subsequent tag-and-push steps.
	fmt.Println(uri)
}

// ExampleNew_publicRegistry demonstrates the public registry variant, which
// supports repository creation only. The public registry API is served from
// us-east-1 regardless of where the pipeline runs.
func ExampleNew_publicRegistry() {
	ctx := context.Background()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion("us-east-1"))
	if err != nil {
		log.Fatal(err)
	}

	r := ecrreconciler.New(awsecrpublic.New(ecrpublic.NewFromConfig(cfg)))

	uri, err := r.Reconcile(ctx, "pub-a")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(uri)
}
