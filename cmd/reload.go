package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/brojonat/annonces/worker"
)

func request_reload(ctx *cli.Context) error {
	logger := getLogger()
	endpoint := ctx.String("server-endpoint")
	authToken := ctx.String("auth-token")
	if authToken == "" {
		return fmt.Errorf("must supply an auth token")
	}

	if interval := ctx.Duration("interval"); interval > 0 {
		return worker.RunWorkerFunc(
			ctx.Context,
			logger,
			interval,
			worker.MakeRemoteReloadWorkerFunc(endpoint, authToken),
		)
	}

	msg, err := worker.RequestReload(ctx.Context, endpoint, worker.GetDefaultHeaders(authToken))
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}
