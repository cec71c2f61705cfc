package main

import (
	"fmt"

	"github.com/pkg/errors"

	echoapi "github.com/lyceumacademy/lyceum/apps/api/echo"
	"github.com/lyceumacademy/lyceum/core"
)

// token prints a signed API token for a learner of the external identity provider.
func (cli *commandLine) token(email, name, role string) error {
	email = core.CleanString(email, true /* lower */)
	if !echoapi.ValidRole(role) {
		return errors.Errorf("%q: no such role", role)
	}

	token, err := echoapi.GenerateToken(cli.conf, echoapi.NewClaims(cli.conf, email, core.CleanString(name), role))
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}
