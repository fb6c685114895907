package main

import (
	"fmt"
	"os"

	"github.com/haltepunkt/stx/internal/cli"
	"github.com/haltepunkt/stx/internal/utils"
)

// main is the entry point for the stx command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	exitCode := cli.Run(os.Args[1:], loggerInstance)
	_ = loggerInstance.Sync()
	os.Exit(exitCode)
}
