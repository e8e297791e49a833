package main

import (
	"blog-service/app"
)

func main() {
	app.Run()
}
