package main

import (
	"os"

	"github.com/storacha/go-verfer/cmd/verfer/app"
)

func main() {
	os.Exit(app.Execute(os.Args[1:]))
}
