// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package main

import (
	"context"
	"os"

	"github.com/stratumhq/stratum/cmd/stratum/internal/cmdapi"

	// Register the core structural kinds with the document readers.
	_ "github.com/stratumhq/stratum/structure/core"
)

func main() {
	cmdapi.Root.SetOut(os.Stdout)
	err := cmdapi.Root.ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}
