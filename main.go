package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/idena-network/ecosystem-client/config"
	"github.com/idena-network/ecosystem-client/core"
	"github.com/idena-network/ecosystem-client/types"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"
)

func main() {
	app := cli.NewApp()
	app.Name = "github.com/idena-network/ecosystem-client"
	app.Usage = "Ecosystem REST client"
	app.Version = "0.0.1"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "Config file",
			Value: "config.json",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "sign-in",
			Usage:  "Sign in and persist the auth token",
			Action: withClient(signIn),
		},
		{
			Name:   "sign-out",
			Usage:  "Clear the persisted auth token",
			Action: withClient(signOut),
		},
		{
			Name:  "get",
			Usage: "Send a GET request and print the response body",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "path", Usage: "Request path relative to the base url", Value: "v1/offers"},
				cli.StringSliceFlag{Name: "param", Usage: "Query parameter as key=value"},
			},
			Action: withClient(get),
		},
		{
			Name:  "post",
			Usage: "Send a POST request and report completion",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "path", Usage: "Request path relative to the base url"},
				cli.StringFlag{Name: "body", Usage: "JSON request body"},
			},
			Action: withClient(post),
		},
		{
			Name:  "stub-server",
			Usage: "Run the development stub of the ecosystem API",
			Action: func(context *cli.Context) error {
				appConfig := config.LoadConfig(context.GlobalString("config"))
				initLogger(appConfig.Verbosity)
				initServer(appConfig).Start()
				return nil
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func withClient(action func(*cli.Context, *core.RestClient) error) func(*cli.Context) error {
	return func(context *cli.Context) error {
		appConfig := config.LoadConfig(context.GlobalString("config"))
		initLogger(appConfig.Verbosity)
		client, err := initClient(appConfig)
		if err != nil {
			return err
		}
		return action(context, client)
	}
}

func signIn(_ *cli.Context, client *core.RestClient) error {
	token, err := client.SignIn(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("signed in, token expires at %v\n", token.ExpirationDate)
	return nil
}

func signOut(_ *cli.Context, client *core.RestClient) error {
	client.SignOut()
	log.Info("Auth token cleared")
	return nil
}

func get(ctx *cli.Context, client *core.RestClient) error {
	parameters, err := parseParameters(ctx.StringSlice("param"))
	if err != nil {
		return err
	}
	request, err := client.BuildRequest(context.Background(), ctx.String("path"), "GET", types.RequestOptions{
		Parameters: parameters,
	})
	if err != nil {
		return err
	}
	data, err := client.DataRequestAsync(request).Await(context.Background())
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func post(ctx *cli.Context, client *core.RestClient) error {
	var body []byte
	if ctx.String("body") != "" {
		body = []byte(ctx.String("body"))
	}
	request, err := client.BuildRequest(context.Background(), ctx.String("path"), "POST", types.RequestOptions{
		Body: body,
	})
	if err != nil {
		return err
	}
	if _, err := client.RequestAsync(request).Await(context.Background()); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func parseParameters(params []string) (map[string]string, error) {
	if len(params) == 0 {
		return nil, nil
	}
	res := make(map[string]string, len(params))
	for _, param := range params {
		parts := strings.SplitN(param, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, errors.Errorf("invalid parameter %q, expected key=value", param)
		}
		res[parts[0]] = parts[1]
	}
	return res, nil
}
