package main

import (
	"context"
	"fmt"
	"os"

	"github.com/km-arc/go-artax/app"
	"github.com/km-arc/go-artax/framework/console"
)

func main() {
	if err := console.Execute(context.Background(),
		&app.AppServiceProvider{},
		&app.ReportServiceProvider{},
	); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
