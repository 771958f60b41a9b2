package main

import "recipe-share-backend/cmd"

func main() {
	cmd.Execute()
}
