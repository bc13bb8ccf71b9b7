package main

import (
	"jewel-studio-api/app"
)

func main() {
	app.Run()
}
