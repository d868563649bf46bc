// cmd/kryon-view/main.go
package main

import (
	"github.com/waozixyz/kryon-ir/internal/app"
	"github.com/waozixyz/kryon-ir/render/raylib"
)

func main() {
	app.Run(raylib.NewRaylibRenderer())
}
