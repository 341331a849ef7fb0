package main

import "wardenbot/app"

func main() {
	app.RunBot()
}
