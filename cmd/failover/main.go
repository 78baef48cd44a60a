package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/dmitrijs2005/regionfailover/internal/app"
	"github.com/dmitrijs2005/regionfailover/internal/config"
	"github.com/dmitrijs2005/regionfailover/internal/flagx"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if flagx.BoolFlag("-once") {
		if err := a.RunOnce(ctx, os.Stdout); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	lambda.Start(a.Handle)
}
