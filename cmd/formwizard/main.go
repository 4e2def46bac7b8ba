package main

import "github.com/goliatone/go-formwizard/cmd/formwizard/cmd"

func main() {
	cmd.Execute()
}
