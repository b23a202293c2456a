package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	echoapi "github.com/trezcool/masomo-dashboard/apps/api/echo"
	"github.com/trezcool/masomo-dashboard/core/auth"
)

// login signs in like the dashboard does and prints a bearer token for the API.
func (cli *commandLine) login(ctx context.Context, email, pwd string) error {
	profile, err := cli.app.Auth.Login(ctx, auth.Credentials{Email: email, Password: pwd})
	if err != nil {
		return err
	}
	token, err := echoapi.GenerateToken(echoapi.NewClaims(profile, cli.app.Conf), cli.app.Conf.SecretKey)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	fmt.Fprintf(cli.out, "Signed in as %s <%s>\n%s\n", profile.Name, profile.Email, token)
	return nil
}
