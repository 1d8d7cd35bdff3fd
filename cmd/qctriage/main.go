// cmd/qctriage/main.go
package main

import (
	"qctriage/internal/app"
	"qctriage/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
