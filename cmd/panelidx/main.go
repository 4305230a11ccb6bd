// cmd/panelidx/main.go
package main

import (
	"panelidx/internal/app"
	"panelidx/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
