package main

import (
	"context"
	"log"

	"github.com/storefront-samples/go-bff-server/internal/app/bff"
)

func main() {
	if err := bff.Run(context.Background()); err != nil {
		log.Fatalf("bff exited: %v", err)
	}
}
