package main

import (
	"github.com/telemetry-platform/alarm-evaluator/cmd/alarm-evaluator/cmd"
)

func main() {
	cmd.Execute()
}
