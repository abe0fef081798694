package main

import (
	"lpnu-schedule/cmd/lpnu-cli/commands"
	"lpnu-schedule/pkg/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
