package main

import (
	"github.com/coffemugtester/youtwit/cmd"
	"github.com/mudler/xlog"
)

func main() {
	// the level from config is applied once the command line is parsed
	xlog.SetLogger(xlog.NewLogger(xlog.LogLevel("info"), "text"))

	if err := cmd.Execute(); err != nil {
		xlog.Fatal("Error running youtwit", "error", err)
	}
}
