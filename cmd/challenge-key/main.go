// Package main provides a one-shot utility for challenge-grant key
// generation.
//
// It emits the asymmetric keypair used to sign share-a-puzzle grants.
package main

import (
	"os"

	"github.com/louisbranch/equinox.space/internal/platform/config"
	"github.com/louisbranch/equinox.space/internal/tools/challengekey"
)

func main() {
	if err := challengekey.Run(os.Stdout, nil); err != nil {
		config.Exitf("generate challenge key: %v", err)
	}
}
