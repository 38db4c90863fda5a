package main

import "github.com/Egor213/ProbeTrap/internal/app"

func main() {
	app.Run()
}
